package create_reservation

import (
	"errors"
	"net/http"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	"github.com/nrgaliy/Studio-BookingService/internal/api/middleware"
	createReservation "github.com/nrgaliy/Studio-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTimes       = "некорректный формат даты или времени"
	msgConsentRequired    = "требуется согласие на обработку персональных данных"
	msgEmptySelection     = "не выбрано ни одного слота"
	msgNonContiguous      = "выбор должен быть непрерывным диапазоном"
	msgStudioClosed       = "студия закрыта в выбранное время"
	msgCommitCutoff       = "слишком поздно для бронирования этого времени"
	msgSlotConflict       = "выбранное время уже занято"
	msgDiscountConflict   = "скидки недоступны, обновите расчёт цены"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времён)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: customer_id=%d, studio_id=%d, date=%s",
				customerID, req.StudioID, req.Date)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrDiscountConflict):
			h.logger.Warn("POST /reservations - Discount conflict: customer_id=%d, studio_id=%d",
				customerID, req.StudioID)
			handlers.RespondConflict(w, msgDiscountConflict)

		case errors.Is(err, createReservation.ErrStudioClosed):
			h.logger.Warn("POST /reservations - Studio closed: customer_id=%d, studio_id=%d, date=%s",
				customerID, req.StudioID, req.Date)
			handlers.RespondBadRequest(w, msgStudioClosed)

		case errors.Is(err, createReservation.ErrCommitCutoff):
			h.logger.Warn("POST /reservations - Commit cutoff passed: customer_id=%d, studio_id=%d, date=%s",
				customerID, req.StudioID, req.Date)
			handlers.RespondBadRequest(w, msgCommitCutoff)

		case errors.Is(err, createReservation.ErrConsentRequired):
			h.logger.Warn("POST /reservations - Privacy consent required: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgConsentRequired)

		case errors.Is(err, createReservation.ErrEmptySelection):
			h.logger.Warn("POST /reservations - Empty selection: customer_id=%d, studio_id=%d",
				customerID, req.StudioID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, createReservation.ErrNonContiguous):
			h.logger.Warn("POST /reservations - Non-contiguous selection: customer_id=%d, studio_id=%d",
				customerID, req.StudioID)
			handlers.RespondBadRequest(w, msgNonContiguous)

		case errors.Is(err, createReservation.ErrNotAuthenticated):
			h.logger.Warn("POST /reservations - Customer not authenticated")
			handlers.RespondUnauthorized(w, msgMissingUserID)

		case errors.Is(err, createReservation.ErrBusinessRule):
			h.logger.Warn("POST /reservations - Business rule violation: customer_id=%d, studio_id=%d, error=%v",
				customerID, req.StudioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d, studio_id=%d, error=%v",
				customerID, req.StudioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, studio_id=%d, error=%v",
				customerID, req.StudioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, studio_id=%d",
		result.ID, customerID, req.StudioID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
