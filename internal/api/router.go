// Package api exposes the operational HTTP surface: liveness and Prometheus
// metrics. It is separate from the TLS catalog listener and carries no
// catalog operations.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the admin Echo instance.
func NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echoprometheus.NewMiddleware("funko_admin"))

	e.GET("/health", liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
