package delete_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/service/availability"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) Delete(ctx context.Context, ownerID, ruleID string) error {
	return m.Called(ctx, ownerID, ruleID).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const ruleID = "0b7e4d1a-2c3f-4e5a-9b6c-7d8e9f0a1b2c"

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "foreign or missing rule", svcErr: availability.ErrRuleNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", svcErr: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("Delete", mock.Anything, "owner", ruleID).Return(tt.svcErr)

			r := mux.NewRouter()
			r.HandleFunc("/api/v1/availability/{ruleId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/availability/"+ruleID, nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), "owner"))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_MalformedID(t *testing.T) {
	for _, id := range []string{"r1", "not-a-uuid", "0b7e4d1a2c3f"} {
		t.Run(id, func(t *testing.T) {
			svc := &serviceMock{}

			r := mux.NewRouter()
			r.HandleFunc("/api/v1/availability/{ruleId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/availability/"+id, nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), "owner"))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
