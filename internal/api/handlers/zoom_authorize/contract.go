package zoom_authorize

import (
	"context"

	"github.com/timenest/timenest-api/internal/service/meetings/models"
)

type MeetingService interface {
	AuthURL(ctx context.Context, userID string) (*models.AuthURLResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
