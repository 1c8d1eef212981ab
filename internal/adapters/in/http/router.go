package http

import (
	"context"
	"net/http"

	"ferryops/internal/adapters/in/http/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterDeps is everything the HTTP surface needs.
type RouterDeps struct {
	Server *Server
	Gate   *auth.Gate
	// ChatSocket serves /ws/chat; nil leaves the route out.
	ChatSocket echo.HandlerFunc
	Logger     *zap.Logger
}

// NewRouter builds the echo instance with middleware, docs, metrics and the
// /api/v1 routes.
func NewRouter(ctx context.Context, deps RouterDeps) (*echo.Echo, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	if err = RegisterDocs(doc); err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(deps.Logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(deps.Logger))
	e.Use(ObserveDuration())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	deps.Server.Register(e.Group("/api/v1"), deps.Gate, validate)

	if deps.ChatSocket != nil {
		e.GET("/ws/chat", deps.ChatSocket, auth.RequireRole(deps.Gate, auth.RoleSupplier, auth.RoleInventory))
	}

	return e, nil
}
