package middleware

import (
	"net/http"

	"eFurnitureMarket/pkg/logger"

	jsonres "eFurnitureMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo fallback for errors no handler translated itself.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	code := jsonres.CodeInternal
	switch status {
	case http.StatusNotFound:
		code = jsonres.CodeNotFound
	case http.StatusBadRequest:
		code = jsonres.CodeBadRequest
	case http.StatusUnauthorized:
		code = jsonres.CodeUnauthorized
	case http.StatusForbidden:
		code = jsonres.CodeForbidden
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	if jsonErr := c.JSON(status, jsonres.Error(code, message, nil)); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}
