package routes

import (
	"github.com/gin-gonic/gin"

	"recommender/internal/api/handlers/recommendation"
	"recommender/internal/api/handlers/system"
	"recommender/internal/container"
)

// Router управляет маршрутизацией приложения.
// Централизует регистрацию всех маршрутов.
type Router struct {
	engine                *gin.Engine
	recommendationHandler *recommendation.Handler
	systemHandler         *system.Handler
}

// NewRouter создает новый роутер
func NewRouter(engine *gin.Engine, container *container.Container) (*Router, error) {
	recommendationHandler, err := container.GetRecommendationHandler()
	if err != nil {
		return nil, err
	}

	systemHandler, err := container.GetSystemHandler()
	if err != nil {
		return nil, err
	}

	return &Router{
		engine:                engine,
		recommendationHandler: recommendationHandler,
		systemHandler:         systemHandler,
	}, nil
}

// RegisterAllRoutes регистрирует все маршруты приложения
func (r *Router) RegisterAllRoutes() {
	api := r.engine.Group("/api")

	RegisterRecommendationRoutes(api, r.recommendationHandler)
	RegisterSystemRoutes(api, r.systemHandler)
	RegisterSwaggerRoutes(r.engine)
}
