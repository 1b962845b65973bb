package schedule

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/internal/service/slots"
	"github.com/timenest/timenest-api/pkg/dbmetrics"
	"github.com/timenest/timenest-api/pkg/types"
)

type availabilityMock struct{ mock.Mock }

func (m *availabilityMock) ListByOwner(ctx context.Context, ownerID string) ([]*domain.AvailabilityRecord, error) {
	args := m.Called(ctx, ownerID)
	list, _ := args.Get(0).([]*domain.AvailabilityRecord)
	return list, args.Error(1)
}

type appointmentsMock struct{ mock.Mock }

func (m *appointmentsMock) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if fn, ok := args.Get(0).(func(domain.AppointmentsFilter) []*domain.Appointment); ok {
		return fn(filter), args.Error(1)
	}
	list, _ := args.Get(0).([]*domain.Appointment)
	return list, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mondayRecord(id, start string) *domain.AvailabilityRecord {
	return &domain.AvailabilityRecord{
		ID:         id,
		OwnerID:    "owner",
		DayOfWeek:  1,
		StartTime:  start,
		EndTime:    "20:00:00",
		ValidFrom:  types.MustParseDate("2024-01-01"),
		ValidUntil: types.MustParseDate("2024-03-31"),
	}
}

func newService(av *availabilityMock, ap *appointmentsMock) *Service {
	return NewService(av, ap, slots.NewResolver(slots.Options{}), slots.Horizon{}, nopLogger{})
}

func TestService_Compute(t *testing.T) {
	av := &availabilityMock{}
	ap := &appointmentsMock{}

	av.On("ListByOwner", mock.Anything, "owner").Return([]*domain.AvailabilityRecord{
		mondayRecord("r1", "17:00:00"),
		mondayRecord("r2", "broken"),
	}, nil)
	ap.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
		return f.ToUserID != nil && *f.ToUserID == "owner" && !f.IncludeInactive && f.From != nil
	})).Return([]*domain.Appointment{{
		ToUserID:    "owner",
		ScheduledAt: time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC),
		Status:      domain.StatusScheduled,
	}}, nil)

	result, err := newService(av, ap).Compute(context.Background(), "owner", now)

	require.NoError(t, err)
	require.Len(t, result.Slots, 12)
	assert.Equal(t, time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC), result.Slots[0].StartsAt)
	assert.Equal(t, time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC), result.Slots[1].StartsAt)
	assert.Equal(t, 1, result.SkippedRules)
}

func TestService_Compute_EmptyInputs(t *testing.T) {
	av := &availabilityMock{}
	ap := &appointmentsMock{}
	av.On("ListByOwner", mock.Anything, "owner").Return([]*domain.AvailabilityRecord{}, nil)
	ap.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{}, nil)

	result, err := newService(av, ap).Compute(context.Background(), "owner", now)

	require.NoError(t, err)
	assert.NotNil(t, result.Slots)
	assert.Empty(t, result.Slots)
}

func TestService_Compute_AppointmentsSinceStartOfDay(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	// Воскресенье 2024-10-27 длится 25 часов; now - 23:30 по Мадриду
	lateEvening := time.Date(2024, 10, 27, 22, 30, 0, 0, time.UTC)
	booked := &domain.Appointment{
		ToUserID:    "owner",
		ScheduledAt: time.Date(2024, 10, 27, 0, 15, 0, 0, madrid),
		Status:      domain.StatusScheduled,
	}

	av := &availabilityMock{}
	ap := &appointmentsMock{}
	av.On("ListByOwner", mock.Anything, "owner").Return([]*domain.AvailabilityRecord{{
		ID:         "r1",
		OwnerID:    "owner",
		DayOfWeek:  0,
		StartTime:  "00:15:00",
		EndTime:    "01:00:00",
		ValidFrom:  types.MustParseDate("2024-10-27"),
		ValidUntil: types.MustParseDate("2024-10-27"),
	}}, nil)

	// Хранилище отдает только встречи не раньше filter.From
	var from time.Time
	ap.On("ListWithFilter", mock.Anything, mock.Anything).Return(func(f domain.AppointmentsFilter) []*domain.Appointment {
		from = *f.From
		if booked.ScheduledAt.Before(from) {
			return []*domain.Appointment{}
		}
		return []*domain.Appointment{booked}
	}, nil)

	svc := NewService(av, ap, slots.NewResolver(slots.Options{Location: madrid}), slots.Horizon{}, nopLogger{})
	result, err := svc.Compute(context.Background(), "owner", lateEvening)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 26, 22, 0, 0, 0, time.UTC), from.UTC())
	assert.False(t, from.After(booked.ScheduledAt))
	assert.Empty(t, result.Slots)
}

func TestService_Compute_FetchErrors(t *testing.T) {
	dbErr := errors.New("connection reset")

	t.Run("availability", func(t *testing.T) {
		av := &availabilityMock{}
		ap := &appointmentsMock{}
		av.On("ListByOwner", mock.Anything, "owner").Return(nil, dbErr)
		ap.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{}, nil)

		_, err := newService(av, ap).Compute(context.Background(), "owner", now)

		assert.ErrorIs(t, err, ErrAvailabilityFetch)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("appointments", func(t *testing.T) {
		av := &availabilityMock{}
		ap := &appointmentsMock{}
		av.On("ListByOwner", mock.Anything, "owner").Return([]*domain.AvailabilityRecord{}, nil)
		ap.On("ListWithFilter", mock.Anything, mock.Anything).Return(nil, dbErr)

		_, err := newService(av, ap).Compute(context.Background(), "owner", now)

		assert.ErrorIs(t, err, ErrAppointmentsFetch)
	})
}

func TestService_Compute_InsideTransaction(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	av := &availabilityMock{}
	ap := &appointmentsMock{}
	av.On("ListByOwner", ctx, "owner").Return([]*domain.AvailabilityRecord{mondayRecord("r1", "17:00:00")}, nil)
	ap.On("ListWithFilter", ctx, mock.Anything).Return([]*domain.Appointment{}, nil)

	result, err := newService(av, ap).Compute(ctx, "owner", now)

	require.NoError(t, err)
	assert.Len(t, result.Slots, 13)
	av.AssertExpectations(t)
	ap.AssertExpectations(t)
}
