package meetings

import (
	"context"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
)

// TokenRepository интерфейс хранилища OAuth-токенов
type TokenRepository interface {
	Upsert(ctx context.Context, token *domain.MeetingToken) error
	GetByUserID(ctx context.Context, userID string) (*domain.MeetingToken, error)
}

// ZoomClient интерфейс клиента сервиса видеовстреч
type ZoomClient interface {
	Configured() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, userID, code string) (*domain.MeetingToken, error)
	CreateMeeting(ctx context.Context, token *domain.MeetingToken, topic string, startTime time.Time) (*domain.Meeting, *domain.MeetingToken, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
