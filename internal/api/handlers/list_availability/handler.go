package list_availability

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/timenest/timenest-api/internal/api/handlers"
)

const msgInvalidUserID = "некорректный ID пользователя"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := strings.TrimSpace(mux.Vars(r)["userId"])
	if ownerID == "" {
		h.logger.Warn("GET /users/{id}/availability - Missing user ID")
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /users/{id}/availability - Failed to list rules: user_id=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
