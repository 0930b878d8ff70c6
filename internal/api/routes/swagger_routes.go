package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"recommender/docs"
)

// RegisterSwaggerRoutes регистрирует маршруты Swagger UI
func RegisterSwaggerRoutes(engine *gin.Engine) {
	// Устанавливаем информацию о Swagger из сгенерированной документации
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}
