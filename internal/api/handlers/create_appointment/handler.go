package create_appointment

import (
	"errors"
	"net/http"

	"github.com/timenest/timenest-api/internal/api/handlers"
	"github.com/timenest/timenest-api/internal/api/middleware"
	createAppointment "github.com/timenest/timenest-api/internal/usecase/create_appointment"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgSelfBooking        = "нельзя забронировать встречу с самим собой"
	msgSlotNotAvailable   = "выбранное время недоступно"
	msgSlotTaken          = "выбранное время уже занято"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSelfBooking):
			h.logger.Warn("POST /appointments - Self booking: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgSelfBooking)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: from=%s, to=%s, at=%s", userID, req.ToUserID, req.ScheduledAt)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: from=%s, to=%s, at=%s", userID, req.ToUserID, req.ScheduledAt)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: from=%s, to=%s, error=%v",
				userID, req.ToUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, from=%s, to=%s", result.ID, userID, req.ToUserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
