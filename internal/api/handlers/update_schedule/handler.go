package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	"github.com/nrgaliy/Studio-BookingService/internal/api/middleware"
	scheduleService "github.com/nrgaliy/Studio-BookingService/internal/service/schedule"
)

const (
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidWindow      = "некорректное рабочее окно"
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

// Handle PUT /api/v1/studios/{studioId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем studioId из URL
	vars := mux.Vars(r)
	studioIDStr := vars["studioId"]

	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /studios/{id}/schedule - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /studios/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем расписание (сервис сам проверит права сотрудника)
	result, err := h.service.UpdateWeekly(r.Context(), req.ToServiceRequest(studioID, userID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /studios/{id}/schedule - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleService.ErrInvalidTimeRange):
			h.logger.Warn("PUT /studios/{id}/schedule - Invalid window: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /studios/{id}/schedule - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /studios/{id}/schedule - Failed to update schedule: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studios/{id}/schedule - Schedule updated successfully: studio_id=%d, user_id=%d",
		studioID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
