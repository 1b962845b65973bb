package zoom_authorize

import (
	"errors"
	"net/http"

	"github.com/timenest/timenest-api/internal/api/handlers"
	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/service/meetings"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgNotConfigured = "интеграция с Zoom не настроена"
)

type Handler struct {
	service MeetingService
	logger  Logger
}

func NewHandler(service MeetingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/zoom/authorize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /zoom/authorize - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.AuthURL(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrNotConfigured):
			h.logger.Warn("GET /zoom/authorize - Zoom is not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("GET /zoom/authorize - Failed to build auth url: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
