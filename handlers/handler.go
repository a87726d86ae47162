package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"linktracker/services"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	links     *services.LinkService
	analytics *services.AnalyticsService
	db        *gorm.DB
	redis     *redis.Client
	baseURL   string
}

func New(links *services.LinkService, analytics *services.AnalyticsService, db *gorm.DB, rdb *redis.Client, baseURL string) *Handler {
	return &Handler{
		links:     links,
		analytics: analytics,
		db:        db,
		redis:     rdb,
		baseURL:   baseURL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/link", h.CreateLink)
		api.GET("/analytics", h.GetAnalytics)
		api.GET("/health", h.Health)
		api.GET("/health/db", h.HealthDB)
		api.GET("/health/redis", h.HealthRedis)
	}

	router.GET("/:code", h.Redirect)
}
