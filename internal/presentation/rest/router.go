package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayanth2212/AgriSure/pkg/auth"
)

// RouterConfig collects what the HTTP API serves. Fields and Metrics may be
// nil.
type RouterConfig struct {
	Assessments *AssessmentHandler
	Fields      *FieldHandler
	Health      *HealthHandler
	Metrics     http.Handler
	JWT         *auth.JWTService
	Logger      *slog.Logger
}

// NewRouter builds the gin engine. Probes and /metrics are public; /v1
// requires a bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	r.GET("/healthz", cfg.Health.Healthz)
	r.GET("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	v1 := r.Group("/v1")
	v1.Use(BearerAuth(cfg.JWT))
	{
		v1.POST("/assessments",
			RequireRole(auth.RoleAdmin, auth.RoleAdjuster, auth.RoleAPIClient),
			cfg.Assessments.Assess)
		v1.GET("/assessments/:id",
			RequireRole(auth.RoleAdmin, auth.RoleAdjuster, auth.RoleInvestigator, auth.RoleAPIClient),
			cfg.Assessments.Get)
		v1.GET("/farmers/:farmerID/assessments",
			RequireRole(auth.RoleAdmin, auth.RoleAdjuster, auth.RoleInvestigator),
			cfg.Assessments.ListByFarmer)
		if cfg.Fields != nil {
			v1.POST("/farmers/:farmerID/fields",
				RequireRole(auth.RoleAdmin, auth.RoleAdjuster),
				cfg.Fields.Register)
		}
	}
	return r
}
