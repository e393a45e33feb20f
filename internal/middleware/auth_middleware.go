package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/utils"

	jsonres "eFurnitureMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware basic JWT authentication
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					jsonres.CodeUnauthorized, "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					jsonres.CodeUnauthorized, "Invalid authorization format", nil,
				))
			}

			tokenString := tokenParts[1]

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					jsonres.CodeUnauthorized, "Invalid token", nil,
				))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "Status Forbidden", nil,
				))
			}

			if time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "Status Forbidden", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok || !strings.EqualFold(roleStr, domain.RoleAdmin) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// StaffOrAdmin allows staff members and admins through, everyone else gets
// a 403.
func StaffOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "Invalid role", nil,
				))
			}

			if strings.EqualFold(roleStr, domain.RoleAdmin) || strings.EqualFold(roleStr, domain.RoleStaff) {
				return next(c)
			}

			return c.JSON(http.StatusForbidden, jsonres.Error(
				jsonres.CodeForbidden, "Staff access required", nil,
			))
		}
	}
}

func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			loggedInUserID, ok := c.Get("user_id").(uint)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					jsonres.CodeUnauthorized, "User not authenticated", nil,
				))
			}

			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "Invalid role", nil,
				))
			}

			// Admin can access every resource
			if strings.EqualFold(roleStr, domain.RoleAdmin) {
				return next(c)
			}

			// Otherwise the ID in the path has to match the logged-in user
			requestedID := c.Param("id")
			requestedIDUint, err := strconv.ParseUint(requestedID, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					jsonres.CodeBadRequest, "Invalid user ID", nil,
				))
			}

			if uint(requestedIDUint) != loggedInUserID {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					jsonres.CodeForbidden, "You can only access your own data", nil,
				))
			}

			return next(c)
		}
	}
}
