package create_appointment

import (
	"context"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
	meetingModels "github.com/timenest/timenest-api/internal/service/meetings/models"
	"github.com/timenest/timenest-api/internal/service/slots"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	SetMeetingURL(ctx context.Context, id string, meetingURL string) error
}

// ScheduleService интерфейс расчета свободных слотов владельца
type ScheduleService interface {
	Compute(ctx context.Context, ownerID string, now time.Time) (slots.Result, error)
}

// MeetingService интерфейс создания видеовстреч
type MeetingService interface {
	CreateMeeting(ctx context.Context, userID, topic string, startTime time.Time) (*meetingModels.MeetingResponse, error)
}

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, ownerID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
