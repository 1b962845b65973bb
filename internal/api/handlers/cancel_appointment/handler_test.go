package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/timenest/timenest-api/internal/api/middleware"
	"github.com/timenest/timenest-api/internal/service/appointments"
	"github.com/timenest/timenest-api/internal/service/appointments/models"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) Cancel(ctx context.Context, appointmentID, userID string) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, appointmentID, userID)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const appointmentID = "6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f"

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "cancelled", wantStatus: http.StatusOK},
		{name: "not found", svcErr: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "not a participant", svcErr: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already cancelled", svcErr: appointments.ErrCannotCancel, wantStatus: http.StatusConflict},
		{name: "internal", svcErr: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.svcErr != nil {
				svc.On("Cancel", mock.Anything, appointmentID, "guest").Return(nil, tt.svcErr)
			} else {
				svc.On("Cancel", mock.Anything, appointmentID, "guest").Return(&models.AppointmentResponse{ID: appointmentID, Status: "cancelled"}, nil)
			}

			r := mux.NewRouter()
			r.HandleFunc("/api/v1/appointments/{appointmentId}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+appointmentID+"/cancel", nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), "guest"))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_MalformedID(t *testing.T) {
	for _, id := range []string{"appt-1", "123", "6f1c2d3e-4a5b-4c6d-8e7f"} {
		t.Run(id, func(t *testing.T) {
			svc := &serviceMock{}

			r := mux.NewRouter()
			r.HandleFunc("/api/v1/appointments/{appointmentId}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/cancel", nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), "guest"))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
