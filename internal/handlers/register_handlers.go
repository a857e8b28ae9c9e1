package handlers

import (
	"reflect"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/services"
	"github.com/coinkeep/coinkeep_backend/internal/middleware"
	"github.com/coinkeep/coinkeep_backend/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// registerCustomValidators teaches gin's validator about decimal.Decimal so
// binding tags on amount fields see the numeric value instead of the
// struct's internals.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
}

// RegisterRoutes sets up all application routes, injecting dependencies
// using the service facades.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs *services.ServiceContainer) {
	registerCustomValidators()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Liveness endpoints stay public.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	// Login is public but rate limited per client IP.
	loginLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 10})
	auth := r.Group("/auth", middleware.RateLimit(loginLimiter))
	registerAuthRoutes(auth, cfg)

	setupAPIV1Routes(r, cfg, svcs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, svcs *services.ServiceContainer) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, svcs.Account)
	registerTransactionRoutes(v1, svcs.Transaction)
	registerCategoryRoutes(v1, svcs.Category)
	registerBudgetRoutes(v1, svcs.Budget)
	registerSettingsRoutes(v1, svcs.Settings)
	registerSyncRoutes(v1, svcs.Sync, svcs.Transaction)
	registerReportingRoutes(v1, svcs.Reporting)
}
