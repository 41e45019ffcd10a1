package server

import (
	"net/http"

	"ecom/internal/config"
	"ecom/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はルートとミドルウェアを組み立てたechoを返す。
func New(cfg config.Config, productH *handler.ProductHandler, orderH *handler.OrderHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	//Reactフロント（別オリジン）からのアクセスを許可
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	RegisterRoutes(e, productH, orderH)
	return e
}

func Start(addr string, cfg config.Config, productH *handler.ProductHandler, orderH *handler.OrderHandler) error {
	return New(cfg, productH, orderH).Start(addr)
}
