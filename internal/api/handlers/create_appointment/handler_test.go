package create_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/timenest/timenest-api/internal/api/middleware"
	createAppointment "github.com/timenest/timenest-api/internal/usecase/create_appointment"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createAppointment.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"toUserId":"owner","postId":"post-1","scheduledAt":"2024-01-08T17:00:00Z"}`

func post(uc *useCaseMock, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	at := time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC)
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createAppointment.Request) bool {
		return r.FromUserID == "guest" && r.ToUserID == "owner" && r.ScheduledAt.Equal(at)
	})).Return(&createAppointment.Response{
		ID:          "appt-1",
		PostID:      "post-1",
		FromUserID:  "guest",
		ToUserID:    "owner",
		ScheduledAt: at,
		Status:      "scheduled",
	}, nil)

	rec := post(uc, "guest", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"appt-1"`)
	assert.Contains(t, rec.Body.String(), `"scheduledAt":"2024-01-08T17:00:00Z"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "unauthorized", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "malformed json", userID: "guest", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", userID: "guest", body: `{"toUserId":"owner","postId":"p","scheduledAt":"2024-01-08T17:00:00Z","extra":1}`, wantStatus: http.StatusBadRequest},
		{name: "missing post", userID: "guest", body: `{"toUserId":"owner","scheduledAt":"2024-01-08T17:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", userID: "guest", body: `{"toUserId":"owner","postId":"p","scheduledAt":"monday"}`, wantStatus: http.StatusBadRequest},
		{name: "self booking", userID: "guest", body: validBody, ucErr: createAppointment.ErrSelfBooking, wantStatus: http.StatusBadRequest},
		{name: "not a slot", userID: "guest", body: validBody, ucErr: createAppointment.ErrSlotNotAvailable, wantStatus: http.StatusUnprocessableEntity},
		{name: "taken", userID: "guest", body: validBody, ucErr: createAppointment.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "internal", userID: "guest", body: validBody, ucErr: createAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := post(uc, tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
