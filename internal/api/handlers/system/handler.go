package system

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recommender/internal/api/handlers/common"
	"recommender/internal/infrastructure/monitoring"
)

// Handler HTTP обработчик системных маршрутов
type Handler struct {
	metrics *monitoring.PipelineMetrics
	version string
}

// NewHandler создает новый системный обработчик
func NewHandler(metrics *monitoring.PipelineMetrics, version string) *Handler {
	return &Handler{
		metrics: metrics,
		version: version,
	}
}

// HandleHealth проверка живости сервиса
// @Summary Health check
// @Description Возвращает статус сервиса
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Статус сервиса"
// @Router /health [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	common.SendJSONResponse(c, http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleMetrics метрики прогонов пайплайна
// @Summary Метрики пайплайна
// @Description Возвращает счетчики и перцентили латентности прогонов аналитического пайплайна
// @Tags system
// @Produce json
// @Success 200 {object} monitoring.MetricsSnapshot "Снимок метрик"
// @Router /metrics [get]
func (h *Handler) HandleMetrics(c *gin.Context) {
	common.SendJSONResponse(c, http.StatusOK, h.metrics.Snapshot())
}
