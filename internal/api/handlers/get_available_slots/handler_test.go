package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	getAvailableSlots "github.com/timenest/timenest-api/internal/usecase/get_available_slots"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *useCaseMock, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/users/{userId}/slots", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{OwnerID: "owner"}).Return(&getAvailableSlots.Response{
		OwnerID: "owner",
		Slots: []getAvailableSlots.Slot{{
			StartsAt:     time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC),
			DisplayLabel: "lunes, 8 de enero de 2024, 17:00",
		}},
	}, nil)

	rec := serve(uc, "/api/v1/users/owner/slots")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"owner","slots":[{"startsAt":"2024-01-08T17:00:00Z","displayLabel":"lunes, 8 de enero de 2024, 17:00"}]}`, rec.Body.String())
}

func TestHandler_Handle_EmptyVersusFailure(t *testing.T) {
	t.Run("no availability", func(t *testing.T) {
		uc := &useCaseMock{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{OwnerID: "owner", Slots: []getAvailableSlots.Slot{}}, nil)

		rec := serve(uc, "/api/v1/users/owner/slots")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"userId":"owner","slots":[]}`, rec.Body.String())
	})

	t.Run("could not load", func(t *testing.T) {
		uc := &useCaseMock{}
		uc.On("Execute", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: %w", getAvailableSlots.ErrInternal, errors.New("db down")))

		rec := serve(uc, "/api/v1/users/owner/slots")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"не удалось загрузить доступное время","code":500}`, rec.Body.String())
	})
}
