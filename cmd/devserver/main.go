package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/config"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/devserver"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/logger"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/metrics"
)

// Local stand-in for the remote storefront backend. Lets the client run
// end to end with no network dependency.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	srv := devserver.New(cfg.DevServer.JWTSecret)
	r := srv.Router(devserver.RateLimitMiddleware(50, 100))

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := ":" + cfg.DevServer.Port
	logger.Infof("storefront dev server listening on %s (accounts: admin/admin123, alice/alice123)", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
