package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/erp_ledger/cmd/docs"
	"github.com/SscSPs/erp_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/SscSPs/erp_ledger/internal/platform/analytics"
	"github.com/SscSPs/erp_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Infrastructure carries the optional collaborators of the router. Nil fields disable their feature.
type Infrastructure struct {
	// Ping reports storage health on /health.
	Ping func(ctx context.Context) error
	// Gatherer backs /metrics.
	Gatherer    prometheus.Gatherer
	RateLimiter *limiter.Limiter
	Analytics   *analytics.Client
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	r.GET("/health", healthHandler(infra.Ping))

	if cfg.MetricsEnabled && infra.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, cfg, services, infra)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	var chain []gin.HandlerFunc
	if infra.RateLimiter != nil {
		chain = append(chain, middleware.RateLimit(infra.RateLimiter))
	}
	chain = append(chain,
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.OrganizationMiddleware(),
		middleware.AnalyticsMiddleware(infra.Analytics),
	)
	v1 := r.Group("/api/v1", chain...)

	RegisterAccountRoutes(v1, services.Account, cfg.IsProduction)
	RegisterJournalRoutes(v1, services.Journal, cfg.IsProduction)
	RegisterEntryRoutes(v1, services.Entry, cfg.IsProduction)
	RegisterReportingRoutes(v1, services.Reporting, cfg.IsProduction)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Storage health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorEnvelope(string(apperrors.CodeInternal), "storage unavailable"))
				return
			}
		}
		respondData(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
