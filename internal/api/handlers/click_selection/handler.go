package click_selection

import (
	"errors"
	"net/http"

	"github.com/nrgaliy/Studio-BookingService/internal/api/handlers"
	clickSelection "github.com/nrgaliy/Studio-BookingService/internal/usecase/click_selection"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimes       = "некорректный формат времени, ожидается HH:MM с шагом 30 минут"
	msgNonContiguous      = "выбор должен быть непрерывным диапазоном"
	msgMaxDuration        = "превышена максимальная длительность бронирования"
)

type Handler struct {
	useCase ClickSelectionUseCase
	logger  Logger
}

func NewHandler(useCase ClickSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/selection/click
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ClickSelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selection/click - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времён)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /selection/click - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, clickSelection.ErrNonContiguous):
			h.logger.Warn("POST /selection/click - Non-contiguous selection: studio_id=%d, clicked=%s",
				req.StudioID, req.ClickedTime)
			handlers.RespondBadRequest(w, msgNonContiguous)

		case errors.Is(err, clickSelection.ErrMaxDurationExceeded):
			h.logger.Warn("POST /selection/click - Max duration exceeded: studio_id=%d", req.StudioID)
			handlers.RespondBadRequest(w, msgMaxDuration)

		case errors.Is(err, clickSelection.ErrInvalidInput):
			h.logger.Warn("POST /selection/click - Invalid input: studio_id=%d, clicked=%s",
				req.StudioID, req.ClickedTime)
			handlers.RespondBadRequest(w, msgInvalidTimes)

		default:
			h.logger.Error("POST /selection/click - Failed to apply click: studio_id=%d, error=%v",
				req.StudioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /selection/click - Selection updated: studio_id=%d, clicked=%s, selected_count=%d",
		req.StudioID, req.ClickedTime, len(result.SelectedTimes))
	handlers.RespondJSON(w, http.StatusOK, response)
}
