package get_available_slots

import (
	"context"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/internal/service/slots"
	"github.com/timenest/timenest-api/pkg/types"
)

// ScheduleService интерфейс расчета слотов по данным хранилищ
type ScheduleService interface {
	Compute(ctx context.Context, ownerID string, now time.Time) (slots.Result, error)
	Resolver() *slots.Resolver
}

// SlotsCache интерфейс кэша рассчитанных слотов
// Запись читается и сохраняется под поколением, прочитанным до расчета
type SlotsCache interface {
	Generation(ctx context.Context, ownerID string) (int64, error)
	Get(ctx context.Context, ownerID string, gen int64, today types.Date) ([]domain.BookableSlot, error)
	Set(ctx context.Context, ownerID string, gen int64, today types.Date, slots []domain.BookableSlot) error
}

// Metrics интерфейс метрик расчета слотов
type Metrics interface {
	ObserveSlotResolution(produced, skippedRules int)
	ObserveCache(hit bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
