package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/timenest/timenest-api/internal/api/handlers"
	getAvailableSlots "github.com/timenest/timenest-api/internal/usecase/get_available_slots"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgLoadFailed    = "не удалось загрузить доступное время"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/slots
// Пустой список слотов - 200 со "slots": [], ошибка загрузки - 500
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := strings.TrimSpace(mux.Vars(r)["userId"])
	if ownerID == "" {
		h.logger.Warn("GET /users/{id}/slots - Missing user ID")
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/slots - Invalid input: user_id=%s, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("GET /users/{id}/slots - Failed to load slots: user_id=%s, error=%v", ownerID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgLoadFailed)
		}
		return
	}

	h.logger.Info("GET /users/{id}/slots - Found %d slots for user_id=%s", len(result.Slots), ownerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
