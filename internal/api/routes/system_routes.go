package routes

import (
	"github.com/gin-gonic/gin"

	"recommender/internal/api/handlers/system"
)

// RegisterSystemRoutes регистрирует системные маршруты
func RegisterSystemRoutes(api *gin.RouterGroup, handler *system.Handler) {
	api.GET("/health", handler.HandleHealth)
	api.GET("/metrics", handler.HandleMetrics)
}
