package create_availability

import (
	"errors"
	"net/http"

	"github.com/timenest/timenest-api/internal/api/handlers"
	"github.com/timenest/timenest-api/internal/api/middleware"
	createAvailability "github.com/timenest/timenest-api/internal/usecase/create_availability"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability - Failed to create rules: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Created %d rules for user_id=%s", len(result.Rules), userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
