package server

import (
	"ecom/internal/handler"

	"github.com/labstack/echo/v4"
)

// 全ルートは /api 配下
func RegisterRoutes(e *echo.Echo, productH *handler.ProductHandler, orderH *handler.OrderHandler) {
	api := e.Group("/api")

	productH.RegisterRoutes(api)
	orderH.RegisterRoutes(api)
}
