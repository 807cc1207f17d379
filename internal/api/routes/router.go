package routes

import (
	"github.com/sogebot/sogebot.dev-sub004/internal/api/handlers"
	"github.com/sogebot/sogebot.dev-sub004/internal/api/middleware"
	"github.com/sogebot/sogebot.dev-sub004/internal/auth"
	"github.com/sogebot/sogebot.dev-sub004/internal/database"
	"github.com/sogebot/sogebot.dev-sub004/internal/registry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter wires the middleware chain and the registry endpoints.
// Every /plugins route runs the auth middleware before its handler.
func SetupRouter(db *database.Database, validator *auth.TokenValidator, logger, accessLogger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Order matters: recovery first so it catches panics from the
	// rest of the chain.
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger, accessLogger))

	healthHandler := handlers.NewHealthHandler(db, logger)
	pluginHandler := handlers.NewPluginHandler(registry.NewStore(db.DB, logger), logger)

	health := router.Group("/health")
	{
		health.GET("", healthHandler.Health)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/live", healthHandler.Health)
	}

	plugins := router.Group("/plugins")
	plugins.Use(middleware.AuthRequired(validator, logger))
	{
		plugins.GET("", pluginHandler.List)
		plugins.GET("/:id", pluginHandler.Get)
		plugins.POST("", pluginHandler.Create)
		plugins.PUT("/:id", pluginHandler.Update)
		plugins.DELETE("/:id", pluginHandler.Delete)
		plugins.POST("/:id/votes", pluginHandler.Vote)
	}

	return router
}
