package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vivek-boini/furniture/internal/handlers"
	"github.com/vivek-boini/furniture/internal/middleware/auth"
)

type Deps struct {
	JWTSecret       []byte
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	OrderHandler    *handlers.OrderHandler
	SettingsHandler *handlers.SettingsHandler
	AdminHandler    *handlers.AdminHandler
}

func Register(e *echo.Echo, d *Deps) {
	protect := auth.Protect(d.JWTSecret)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
	})

	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, protect, auth.AdminOnly)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, protect, auth.AdminOnly)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, protect, auth.AdminOnly)

	orders := api.Group("/orders")
	orders.GET("/stats", d.OrderHandler.GetStats, protect, auth.AdminOnly)
	orders.GET("", d.OrderHandler.ListOrders, protect, auth.AdminOnly)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PATCH("/:id", d.OrderHandler.UpdateOrderStatus, protect, auth.AdminOnly)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder, protect, auth.AdminOnly)

	authGroup := api.Group("/auth")
	authGroup.POST("/customer-signup", d.AuthHandler.CustomerSignup)
	authGroup.POST("/customer-login", d.AuthHandler.CustomerLogin)
	authGroup.POST("/admin-login", d.AuthHandler.AdminLogin)

	settings := api.Group("/settings")
	settings.GET("", d.SettingsHandler.GetSettings)
	settings.PUT("", d.SettingsHandler.UpdateSettings, protect, auth.AdminOnly)
	settings.POST("/callback", d.SettingsHandler.CreateCallback)
	settings.GET("/callback", d.SettingsHandler.ListCallbacks, protect, auth.AdminOnly)
	settings.PATCH("/callback/:id", d.SettingsHandler.UpdateCallbackStatus, protect, auth.AdminOnly)

	admins := api.Group("/admins", protect)
	admins.POST("/create", d.AdminHandler.CreateAdmin, auth.SuperAdminOnly)
	admins.GET("/list", d.AdminHandler.ListAdmins, auth.SuperAdminOnly)
	admins.GET("/profile", d.AdminHandler.GetProfile, auth.AdminOnly)
	admins.PUT("/profile", d.AdminHandler.UpdateProfile, auth.AdminOnly)
}
