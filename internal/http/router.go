package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/views/:key", handler.getView)
		protected.GET("/identity", handler.getIdentity)

		protected.GET("/calendar/events", handler.listEvents)
		protected.GET("/calendar/events.ics", handler.exportEvents)

		protected.GET("/service-orders/:id/dialog", handler.getDialog)
		protected.POST("/service-orders/:id/start", handler.startService)
		protected.POST("/service-orders/:id/complete", handler.completeService)
		protected.GET("/service-orders/:id/navigation", handler.navigation)
		protected.PUT("/service-orders/:id/status", handler.updateStatus)
		protected.GET("/service-orders/:id/history", handler.statusHistory)
	}

	return router
}
