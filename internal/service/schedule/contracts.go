package schedule

import (
	"context"

	"github.com/timenest/timenest-api/internal/domain"
)

// AvailabilityRepository интерфейс хранилища правил доступности
type AvailabilityRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.AvailabilityRecord, error)
}

// AppointmentRepository интерфейс хранилища встреч
type AppointmentRepository interface {
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
