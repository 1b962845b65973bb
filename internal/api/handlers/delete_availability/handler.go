package delete_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/timenest/timenest-api/internal/api/handlers"
	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/service/availability"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgMissingRuleID = "ID правила обязателен"
	msgInvalidRuleID = "некорректный ID правила"
	msgRuleNotFound  = "правило доступности не найдено"
)

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

// Handle DELETE /api/v1/availability/{ruleId}
// Удалить можно только собственное правило; чужое неотличимо от несуществующего
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability/{id} - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	ruleID := mux.Vars(r)["ruleId"]
	if ruleID == "" {
		h.logger.Warn("DELETE /availability/{id} - Missing rule ID")
		handlers.RespondBadRequest(w, msgMissingRuleID)
		return
	}
	if _, err := uuid.Parse(ruleID); err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid rule ID: %s", ruleID)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.Delete(r.Context(), userID, ruleID); err != nil {
		switch {
		case errors.Is(err, availability.ErrRuleNotFound):
			h.logger.Warn("DELETE /availability/{id} - Rule not found: rule_id=%s, user_id=%s", ruleID, userID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete rule: rule_id=%s, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Rule deleted: rule_id=%s, user_id=%s", ruleID, userID)
	w.WriteHeader(http.StatusNoContent)
}
