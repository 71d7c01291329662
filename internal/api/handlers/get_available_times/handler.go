package get_available_times

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	getAvailableTimes "github.com/nrgaliy/Studio-BookingService/internal/usecase/get_available_times"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate        = "дата не может быть в прошлом"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/available-times
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем studioId из URL
	studioIDStr := vars["studioId"]
	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/available-times - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /studios/{id}/available-times - Missing date: studio_id=%d", studioID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(studioID, dateStr)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/available-times - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrInvalidDate):
			h.logger.Warn("GET /studios/{id}/available-times - Past date: studio_id=%d, date=%s", studioID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/available-times - Invalid input: studio_id=%d, date=%s", studioID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidStudioID)

		default:
			h.logger.Error("GET /studios/{id}/available-times - Failed to build catalog: studio_id=%d, date=%s, error=%v",
				studioID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /studios/{id}/available-times - Catalog built successfully: studio_id=%d, date=%s, slots_count=%d",
		studioID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
