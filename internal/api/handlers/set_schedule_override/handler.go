package set_schedule_override

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle PUT /api/v1/studios/{studioId}/schedule/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем studioId и date из URL
	vars := mux.Vars(r)
	studioIDStr := vars["studioId"]
	date := vars["date"]

	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /studios/{id}/schedule/overrides/{date} - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /studios/{id}/schedule/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req SetOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studios/{id}/schedule/overrides/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Устанавливаем переопределение (сервис сам проверит права сотрудника)
	result, err := h.service.SetOverride(r.Context(), req.ToServiceRequest(studioID, userID, date))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /studios/{id}/schedule/overrides/{date} - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleService.ErrInvalidTimeRange):
			h.logger.Warn("PUT /studios/{id}/schedule/overrides/{date} - Invalid window: studio_id=%d, date=%s",
				studioID, date)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /studios/{id}/schedule/overrides/{date} - Invalid input: studio_id=%d, date=%s",
				studioID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("PUT /studios/{id}/schedule/overrides/{date} - Failed to set override: studio_id=%d, date=%s, error=%v",
				studioID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studios/{id}/schedule/overrides/{date} - Override set successfully: studio_id=%d, date=%s",
		studioID, date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
