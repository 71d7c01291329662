package delete_schedule_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	"github.com/nrgaliy/Studio-BookingService/internal/api/middleware"
	scheduleService "github.com/nrgaliy/Studio-BookingService/internal/service/schedule"
	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound        = "переопределение не найдено"
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

// Handle DELETE /api/v1/studios/{studioId}/schedule/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем studioId и date из URL
	vars := mux.Vars(r)
	studioIDStr := vars["studioId"]
	date := vars["date"]

	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /studios/{id}/schedule/overrides/{date} - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /studios/{id}/schedule/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем переопределение (сервис сам проверит права сотрудника)
	err = h.service.DeleteOverride(r.Context(), &models.DeleteOverrideRequest{
		UserID:   userID,
		StudioID: studioID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrOverrideNotFound):
			h.logger.Warn("DELETE /studios/{id}/schedule/overrides/{date} - Override not found: studio_id=%d, date=%s",
				studioID, date)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("DELETE /studios/{id}/schedule/overrides/{date} - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("DELETE /studios/{id}/schedule/overrides/{date} - Invalid date: studio_id=%d, date=%s",
				studioID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /studios/{id}/schedule/overrides/{date} - Failed to delete override: studio_id=%d, date=%s, error=%v",
				studioID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /studios/{id}/schedule/overrides/{date} - Override deleted successfully: studio_id=%d, date=%s",
		studioID, date)
	w.WriteHeader(http.StatusNoContent)
}
