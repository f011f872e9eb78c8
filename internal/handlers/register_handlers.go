package handlers

import (
	"log/slog"
	"net/http"

	"github.com/freelanceflow/ff_backend/cmd/docs"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/middleware"
	"github.com/freelanceflow/ff_backend/internal/store"
	"github.com/freelanceflow/ff_backend/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	stores *store.Manager,
) {
	registerHomeRoutes(r)

	// Public authentication routes
	registerAuthRoutes(r, cfg, services, stores)

	// Authenticated API routes
	setupAPIV1Routes(r, cfg, services, stores)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	stores *store.Manager,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User, stores)
	registerClientRoutes(v1, services.Client, stores)
	registerProjectRoutes(v1, services.Project, stores)
	registerInvoiceRoutes(v1, services.Invoice, stores)
	registerDashboardRoutes(v1, services.Reporting, stores)
	registerActivityRoutes(v1, stores)
	registerExportRoutes(v1, services.Export, stores)
}

// session returns the caller's loaded session store. It writes the
// error response and reports false when authentication or the snapshot
// load fails.
func session(c *gin.Context, stores *store.Manager) (*store.Store, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, "", false
	}

	s, err := stores.GetLoaded(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to load session store", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load session data"})
		return nil, "", false
	}
	return s, userID, true
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
