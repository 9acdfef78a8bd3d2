package router

import (
	"github.com/gin-gonic/gin"

	"takeoffs/internal/domain"
	"takeoffs/internal/handler"
	"takeoffs/internal/middleware"
	"takeoffs/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	projectH *handler.ProjectHandler,
	blueprintH *handler.BlueprintHandler,
	analysisH *handler.AnalysisHandler,
	catalogH *handler.CatalogHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// User management
	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Project routes
	projects := protected.Group("/projects")
	projects.POST("", projectH.Create)
	projects.GET("", projectH.List)
	projects.GET("/:id", projectH.GetByID)
	projects.PUT("/:id", projectH.Update)
	projects.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), projectH.Delete)
	projects.POST("/:id/blueprints", blueprintH.Upload)
	projects.GET("/:id/blueprints", blueprintH.ListByProject)
	projects.GET("/:id/analyses", analysisH.ListByProject)

	// Blueprint routes
	blueprints := protected.Group("/blueprints")
	blueprints.GET("/:id", blueprintH.GetByID)
	blueprints.GET("/:id/download", blueprintH.GetDownloadURL)
	blueprints.GET("/:id/analyses", analysisH.ListByBlueprint)
	blueprints.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), blueprintH.Delete)

	// Analysis routes
	analyses := protected.Group("/analyses")
	analyses.POST("", analysisH.Request)
	analyses.POST("/text", analysisH.AnalyzeText)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.GET("/:id/result", analysisH.GetResult)
	analyses.GET("/:id/report", analysisH.GetReport)
	analyses.GET("/:id/export.csv", analysisH.ExportCSV)
	analyses.GET("/:id/export.xlsx", analysisH.ExportXLSX)

	// Price-book routes
	catalog := protected.Group("/catalog")
	catalog.GET("", catalogH.List)
	catalog.PUT("", middleware.RequireRole(domain.RoleAdmin), catalogH.Upsert)
	catalog.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), catalogH.Delete)

	return r
}
