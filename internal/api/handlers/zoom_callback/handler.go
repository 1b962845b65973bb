package zoom_callback

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/timenest/timenest-api/internal/api/handlers"
	"github.com/timenest/timenest-api/internal/service/meetings"
)

const (
	msgMissingParams = "параметры code и state обязательны"
	msgInvalidState  = "некорректный или просроченный state"
	msgUpstream      = "ошибка обмена кода авторизации в Zoom"
	msgNotConfigured = "интеграция с Zoom не настроена"
)

type Handler struct {
	service     MeetingService
	redirectURL string
	logger      Logger
}

// NewHandler создает обработчик OAuth callback
// При непустом redirectURL пользователь после подключения перенаправляется на него
func NewHandler(service MeetingService, redirectURL string, logger Logger) *Handler {
	return &Handler{
		service:     service,
		redirectURL: redirectURL,
		logger:      logger,
	}
}

// Handle GET /api/v1/zoom/callback?code=...&state=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		h.logger.Warn("GET /zoom/callback - Authorization denied: %s", errParam)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	code, state := query.Get("code"), query.Get("state")
	if code == "" || state == "" {
		h.logger.Warn("GET /zoom/callback - Missing code or state")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	if err := h.service.HandleCallback(r.Context(), code, state); err != nil {
		switch {
		case errors.Is(err, meetings.ErrInvalidState), errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("GET /zoom/callback - Invalid callback: %v", err)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, meetings.ErrNotConfigured):
			h.logger.Warn("GET /zoom/callback - Zoom is not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		case errors.Is(err, meetings.ErrUpstream):
			h.logger.Error("GET /zoom/callback - Upstream error: %v", err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("GET /zoom/callback - Failed to handle callback: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.redirectURL != "" {
		http.Redirect(w, r, withQuery(h.redirectURL, "zoom", "connected"), http.StatusFound)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, CallbackResponse{Connected: true})
}

func withQuery(raw, key, value string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
