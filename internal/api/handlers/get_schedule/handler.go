package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	scheduleService "github.com/nrgaliy/Studio-BookingService/internal/service/schedule"
	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound        = "расписание не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/schedule
// Query params: date (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем studioId из URL
	vars := mux.Vars(r)
	studioIDStr := vars["studioId"]

	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/schedule - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Получаем date из query параметров (опционально)
	serviceReq := &models.GetScheduleRequest{StudioID: studioID}
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		serviceReq.Date = &dateStr
	}

	// Получаем расписание
	result, err := h.service.GetSchedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrScheduleNotFound):
			h.logger.Warn("GET /studios/{id}/schedule - Schedule not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/schedule - Invalid input: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /studios/{id}/schedule - Failed to get schedule: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/schedule - Schedule retrieved successfully: studio_id=%d", studioID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
