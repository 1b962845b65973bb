package availability

import (
	"context"

	"github.com/timenest/timenest-api/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.AvailabilityRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, ownerID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
