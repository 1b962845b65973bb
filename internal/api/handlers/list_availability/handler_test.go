package list_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/timenest/timenest-api/internal/service/availability"
	"github.com/timenest/timenest-api/internal/service/availability/models"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) List(ctx context.Context, ownerID string) (*models.RuleListResponse, error) {
	args := m.Called(ctx, ownerID)
	resp, _ := args.Get(0).(*models.RuleListResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *serviceMock, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/users/{userId}/availability", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		resp       *models.RuleListResponse
		svcErr     error
		wantStatus int
	}{
		{name: "listed", resp: &models.RuleListResponse{Rules: []models.RuleResponse{{ID: "r1"}}, Total: 1}, wantStatus: http.StatusOK},
		{name: "no rules", resp: &models.RuleListResponse{Rules: []models.RuleResponse{}}, wantStatus: http.StatusOK},
		{name: "internal", svcErr: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("List", mock.Anything, "owner-1").Return(tt.resp, tt.svcErr)

			rec := serve(svc, "/api/v1/users/owner-1/availability")

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_BlankOwner(t *testing.T) {
	svc := &serviceMock{}

	rec := serve(svc, "/api/v1/users/%20/availability")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_Handle_Body(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything, "owner-1").Return(&models.RuleListResponse{
		Rules: []models.RuleResponse{{ID: "r1"}, {ID: "r2"}},
		Total: 2,
	}, nil)

	rec := serve(svc, "/api/v1/users/owner-1/availability")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.RuleListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Rules, 2)
	assert.Equal(t, "r2", got.Rules[1].ID)
}
