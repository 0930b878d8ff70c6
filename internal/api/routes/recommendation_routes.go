package routes

import (
	"github.com/gin-gonic/gin"

	"recommender/internal/api/handlers/recommendation"
)

// RegisterRecommendationRoutes регистрирует маршруты рекомендаций
func RegisterRecommendationRoutes(api *gin.RouterGroup, handler *recommendation.Handler) {
	api.GET("/recommendation/:customer_id", handler.HandleGetReport)
	api.GET("/recommendation/:customer_id/opportunities", handler.HandleGetOpportunities)
	api.GET("/recommendation/:customer_id/export", handler.HandleExport)
}
