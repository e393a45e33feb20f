package router

import (
	"eFurnitureMarket/internal/middleware"
	"eFurnitureMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOrAdmin())
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupWalletRoutes(api *echo.Group, handler *rest.WalletHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	wallets := api.Group("/wallets", authRequired)

	wallets.POST("/add", handler.AddBalance, adminOnly)
	wallets.POST("/subtract", handler.SubtractBalance, adminOnly)
	wallets.GET("/:id/balance", handler.GetBalance, middleware.SelfOrAdmin())
	wallets.GET("/:id/transactions", handler.GetTransactions, middleware.SelfOrAdmin())
}

func SetupAppointmentRoutes(api *echo.Group, handler *rest.AppointmentHandler, authRequired echo.MiddlewareFunc) {
	appointments := api.Group("/appointments", authRequired)

	appointments.POST("", handler.CreateAppointment)
	appointments.GET("", handler.GetAppointments, middleware.StaffOrAdmin())
	appointments.GET("/:id", handler.GetAppointmentByID, middleware.StaffOrAdmin())
	appointments.PUT("/:id/status", handler.UpdateAppointmentStatus, middleware.StaffOrAdmin())
	appointments.DELETE("/:id", handler.CancelAppointment)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.GET("/category/:category_id", handler.GetProductsByCategory)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders", middleware.AuthMiddleware())
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("", ordersHandler.GetMyOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)
	orders.PUT("/:id/status", ordersHandler.UpdateOrderStatus, middleware.StaffOrAdmin())
	orders.DELETE("/:id", ordersHandler.DeleteOrder)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}
