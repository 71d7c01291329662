package get_studio_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	"github.com/nrgaliy/Studio-BookingService/internal/api/middleware"
	"github.com/nrgaliy/Studio-BookingService/internal/service/reservations"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidParams   = "некорректные параметры запроса"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/reservations
// Query params: status, date, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем studioId из URL
	vars := mux.Vars(r)
	studioIDStr := vars["studioId"]

	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/reservations - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /studios/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		studioID,
		userID,
		query.Get("status"),
		query.Get("date"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования студии (сервис сам проверит права сотрудника)
	result, err := h.service.GetStudioReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /studios/{id}/reservations - Access denied: studio_id=%d, user_id=%d",
				studioID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/reservations - Invalid filter: studio_id=%d", studioID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /studios/{id}/reservations - Failed to get reservations: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/reservations - Reservations retrieved successfully: studio_id=%d, count=%d",
		studioID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
