// Package server assembles the HTTP surface: middleware chain, routes, and
// the operational endpoints.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/internal/server/middleware"
)

// RouteRegistrar is implemented by each feature handler.
type RouteRegistrar interface {
	RegisterRoutes(r gin.IRouter)
}

// NewRouter builds the gin engine with the shared middleware chain and mounts
// every feature's routes. DeserializeUser runs on all routes so any request
// can carry (and silently renew) an access token; per-route gating is done
// with RequireUser inside the registrars.
func NewRouter(log *zap.Logger, codec middleware.Verifier, reissuer middleware.Reissuer, registrars ...RouteRegistrar) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.Metrics(),
		middleware.DeserializeUser(codec, reissuer, log),
	)

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, reg := range registrars {
		reg.RegisterRoutes(r)
	}
	return r
}
