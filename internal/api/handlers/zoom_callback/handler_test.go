package zoom_callback

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timenest/timenest-api/internal/service/meetings"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) HandleCallback(ctx context.Context, code, state string) error {
	return m.Called(ctx, code, state).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func call(svc *serviceMock, redirectURL, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, redirectURL, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle_Connected(t *testing.T) {
	svc := &serviceMock{}
	svc.On("HandleCallback", mock.Anything, "abc", "st").Return(nil)

	rec := call(svc, "", "/api/v1/zoom/callback?code=abc&state=st")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"connected":true}`, rec.Body.String())

	rec = call(svc, "https://app.example.com/settings?tab=integrations", "/api/v1/zoom/callback?code=abc&state=st")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.example.com/settings?tab=integrations&zoom=connected", rec.Header().Get("Location"))
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svcErr     error
		wantStatus int
	}{
		{name: "missing code", target: "/api/v1/zoom/callback?state=st", wantStatus: http.StatusBadRequest},
		{name: "missing state", target: "/api/v1/zoom/callback?code=abc", wantStatus: http.StatusBadRequest},
		{name: "denied by user", target: "/api/v1/zoom/callback?error=access_denied", wantStatus: http.StatusBadRequest},
		{name: "invalid state", target: "/api/v1/zoom/callback?code=abc&state=st", svcErr: fmt.Errorf("%w: expired", meetings.ErrInvalidState), wantStatus: http.StatusBadRequest},
		{name: "not configured", target: "/api/v1/zoom/callback?code=abc&state=st", svcErr: meetings.ErrNotConfigured, wantStatus: http.StatusServiceUnavailable},
		{name: "upstream", target: "/api/v1/zoom/callback?code=abc&state=st", svcErr: fmt.Errorf("%w: 401", meetings.ErrUpstream), wantStatus: http.StatusBadGateway},
		{name: "internal", target: "/api/v1/zoom/callback?code=abc&state=st", svcErr: meetings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("HandleCallback", mock.Anything, mock.Anything, mock.Anything).Return(tt.svcErr)

			rec := call(svc, "", tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
