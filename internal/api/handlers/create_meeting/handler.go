package create_meeting

import (
	"errors"
	"net/http"

	"github.com/timenest/timenest-api/internal/api/handlers"
	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/service/meetings"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат start_time, ожидается RFC3339"
	msgNoTokens           = "Zoom не подключен"
	msgNotConfigured      = "интеграция с Zoom не настроена"
	msgUpstream           = "не удалось создать встречу в Zoom"
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

// Handle POST /api/v1/meetings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /meetings - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /meetings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startTime, err := req.ParseStartTime()
	if err != nil {
		h.logger.Warn("POST /meetings - Invalid start_time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.CreateMeeting(r.Context(), userID, req.Topic, startTime)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrNoTokens):
			h.logger.Warn("POST /meetings - No Zoom tokens: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgNoTokens)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("POST /meetings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, meetings.ErrNotConfigured):
			h.logger.Warn("POST /meetings - Zoom is not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		case errors.Is(err, meetings.ErrUpstream):
			h.logger.Error("POST /meetings - Upstream error: user_id=%s, error=%v", userID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("POST /meetings - Failed to create meeting: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /meetings - Meeting created: id=%d, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
