// Package gateway boots the ShareIt validating gateway process.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/shareit/internal/gateway/client"
	gatewayhttp "github.com/Apurer/shareit/internal/gateway/http"
	platformobservability "github.com/Apurer/shareit/internal/platform/observability"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Run boots the gateway: request validation, per-caller rate limiting, and
// proxying to the API server.
func Run(ctx context.Context) error {
	const serviceName = "shareit-gateway"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	router := newRouter(serviceName, cfg)

	addr := ":" + cfg.Port
	logger.Info("ShareIt gateway listening",
		slog.String("addr", addr),
		slog.String("server_url", cfg.ServerURL))
	if err := router.Run(addr); err != nil {
		logger.Error("ShareIt gateway exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func newRouter(serviceName string, cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpx.RequestID())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gatewayhttp.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	gatewayhttp.NewHandler(client.New(cfg.ServerURL)).Register(router)
	return router
}
