package recommendation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recommender/internal/api/handlers/common"
	recapp "recommender/internal/application/recommendation"
	recdomain "recommender/internal/domain/recommendation"
	"recommender/internal/infrastructure/export"
	apperrors "recommender/server/errors"
)

// Handler HTTP обработчик рекомендаций
type Handler struct {
	useCase  *recapp.UseCase
	exporter *export.Exporter
}

// NewHandler создает новый HTTP обработчик рекомендаций
func NewHandler(useCase *recapp.UseCase, exporter *export.Exporter) *Handler {
	return &Handler{
		useCase:  useCase,
		exporter: exporter,
	}
}

// ReportResponse ответ с отчетом и рекомендациями
type ReportResponse struct {
	CustomerID      string                            `json:"customer_id"`
	ResearchReport  string                            `json:"research_report"`
	Recommendations []recapp.StructuredRecommendation `json:"recommendations"`
}

// HandleGetReport генерирует отчет с рекомендациями для клиента
// @Summary Получить отчет с рекомендациями
// @Description Прогоняет аналитический пайплайн и генерирует нарративный отчет с cross-sell/upsell рекомендациями
// @Tags recommendation
// @Produce json
// @Param customer_id path string true "ID клиента"
// @Success 200 {object} ReportResponse "Отчет с рекомендациями"
// @Failure 404 {object} map[string]interface{} "Клиент не найден"
// @Failure 422 {object} map[string]interface{} "У клиента нет истории покупок"
// @Failure 500 {object} map[string]interface{} "Внутренняя ошибка сервера"
// @Router /recommendation/{customer_id} [get]
func (h *Handler) HandleGetReport(c *gin.Context) {
	customerID := c.Param("customer_id")
	if customerID == "" {
		common.SendJSONError(c, http.StatusBadRequest, "customer_id is required")
		return
	}

	report, err := h.useCase.BuildReport(c.Request.Context(), customerID)
	if err != nil {
		appErr := mapDomainError(err)
		common.SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	common.SendJSONResponse(c, http.StatusOK, ReportResponse{
		CustomerID:      report.CustomerID,
		ResearchReport:  report.ResearchReport,
		Recommendations: report.Recommendations,
	})
}

// HandleGetOpportunities возвращает выход аналитического ядра без отчета
// @Summary Получить оцененные возможности
// @Description Возвращает ранжированный список возможностей и промежуточные сигналы пайплайна без генерации отчета
// @Tags recommendation
// @Produce json
// @Param customer_id path string true "ID клиента"
// @Success 200 {object} recdomain.Result "Результат пайплайна"
// @Failure 404 {object} map[string]interface{} "Клиент не найден"
// @Failure 422 {object} map[string]interface{} "У клиента нет истории покупок"
// @Failure 500 {object} map[string]interface{} "Внутренняя ошибка сервера"
// @Router /recommendation/{customer_id}/opportunities [get]
func (h *Handler) HandleGetOpportunities(c *gin.Context) {
	customerID := c.Param("customer_id")
	if customerID == "" {
		common.SendJSONError(c, http.StatusBadRequest, "customer_id is required")
		return
	}

	result, err := h.useCase.GetOpportunities(c.Request.Context(), customerID)
	if err != nil {
		appErr := mapDomainError(err)
		common.SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	common.SendJSONResponse(c, http.StatusOK, result)
}

// HandleExport выгружает оцененные возможности файлом
// @Summary Экспортировать возможности
// @Description Выгружает ранжированный список возможностей клиента в формате json, csv или excel
// @Tags recommendation
// @Produce json
// @Param customer_id path string true "ID клиента"
// @Param format query string false "Формат экспорта: json, csv, excel" default(json)
// @Success 200 {file} binary "Файл экспорта"
// @Failure 400 {object} map[string]interface{} "Неизвестный формат"
// @Failure 404 {object} map[string]interface{} "Клиент не найден"
// @Router /recommendation/{customer_id}/export [get]
func (h *Handler) HandleExport(c *gin.Context) {
	customerID := c.Param("customer_id")
	if customerID == "" {
		common.SendJSONError(c, http.StatusBadRequest, "customer_id is required")
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		common.SendJSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.useCase.GetOpportunities(c.Request.Context(), customerID)
	if err != nil {
		appErr := mapDomainError(err)
		common.SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	file, err := h.exporter.Export(result, format)
	if err != nil {
		common.SendJSONError(c, http.StatusInternalServerError, "failed to export opportunities")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// mapDomainError преобразует ошибки домена в AppError с HTTP статусом.
// Все три ошибки таксономии терминальны и доходят до клиента без retry.
func mapDomainError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, recdomain.ErrCustomerNotFound):
		return apperrors.NewNotFoundError("клиент не найден", err)
	case errors.Is(err, recdomain.ErrNoPurchaseHistory):
		return apperrors.NewUnprocessableError("у клиента нет истории покупок", err)
	case errors.Is(err, recdomain.ErrEmptyDataset):
		return apperrors.NewServiceUnavailableError("таблица покупок пуста", err)
	default:
		return apperrors.NewInternalError("recommendation pipeline failed", err)
	}
}
