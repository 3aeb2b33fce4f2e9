// Package server exposes the risk engine over HTTP using gin.
//
// Routes:
//
//	POST /api/v1/risk/assess    full assessment (bearer token required)
//	POST /api/v1/risk/summary   headline score for map views (bearer token required)
//	GET  /api/v1/risk/quick     zone-only check, no authentication
//	GET  /api/v1/risk/zones     high-risk reference data
//	PUT  /api/v1/routes/cache   store route geometry
//	GET  /api/v1/routes/cache   fetch route geometry
//	GET  /metrics               Prometheus metrics
//	GET  /healthz               liveness
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/gokaycavdar/go-georisk/pkg/auth"
	"github.com/gokaycavdar/go-georisk/pkg/engine"
	"github.com/gokaycavdar/go-georisk/pkg/logging"
	"github.com/gokaycavdar/go-georisk/pkg/storage"
)

// Deps are the components served by the router. Engine and Verifier are
// required; Routes and Gatherer are optional and their endpoints are not
// registered when nil.
type Deps struct {
	Engine   *engine.Engine
	Verifier *auth.Verifier
	Routes   storage.RouteCache
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// TrustedProxies is passed to gin for client IP resolution.
	TrustedProxies []string
}

const serviceName = "georisk"

type handlers struct {
	engine *engine.Engine
	routes storage.RouteCache
	logger *slog.Logger
}

// NewRouter builds the HTTP handler.
func NewRouter(d Deps) (*gin.Engine, error) {
	logger := logging.OrDiscard(d.Logger)

	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery(), otelgin.Middleware(serviceName), requestID(), accessLog(logger))

	h := &handlers{engine: d.Engine, routes: d.Routes, logger: logger}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")

	risk := v1.Group("/risk")
	risk.POST("/assess", auth.RequireCaller(d.Verifier), h.assess)
	risk.POST("/summary", auth.RequireCaller(d.Verifier), h.summary)
	risk.GET("/quick", h.quick)
	risk.GET("/zones", h.zones)

	if d.Routes != nil {
		v1.PUT("/routes/cache", h.putRoute)
		v1.GET("/routes/cache", h.getRoute)
	}

	return r, nil
}
