package create_meeting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/service/meetings"
	"github.com/timenest/timenest-api/internal/service/meetings/models"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) CreateMeeting(ctx context.Context, userID, topic string, startTime time.Time) (*models.MeetingResponse, error) {
	args := m.Called(ctx, userID, topic, startTime)
	resp, _ := args.Get(0).(*models.MeetingResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"topic":"Clase","start_time":"2024-01-08T17:00:00Z"}`

func post(svc *serviceMock, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings", strings.NewReader(payload))
	req = req.WithContext(middleware.WithUserID(req.Context(), "owner"))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	at := time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC)
	svc := &serviceMock{}
	svc.On("CreateMeeting", mock.Anything, "owner", "Clase", at).
		Return(&models.MeetingResponse{ID: 7, Topic: "Clase", StartTime: at, JoinURL: "https://zoom.us/j/7"}, nil)

	rec := post(svc, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"joinUrl":"https://zoom.us/j/7"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		svcErr     error
		wantStatus int
	}{
		{name: "missing start time", payload: `{"topic":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "bad start time", payload: `{"start_time":"tomorrow"}`, wantStatus: http.StatusBadRequest},
		{name: "no tokens", payload: body, svcErr: meetings.ErrNoTokens, wantStatus: http.StatusBadRequest},
		{name: "upstream", payload: body, svcErr: meetings.ErrUpstream, wantStatus: http.StatusBadGateway},
		{name: "not configured", payload: body, svcErr: meetings.ErrNotConfigured, wantStatus: http.StatusServiceUnavailable},
		{name: "internal", payload: body, svcErr: meetings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("CreateMeeting", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			rec := post(svc, tt.payload)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
