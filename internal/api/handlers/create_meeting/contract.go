package create_meeting

import (
	"context"
	"time"

	"github.com/timenest/timenest-api/internal/service/meetings/models"
)

type MeetingService interface {
	CreateMeeting(ctx context.Context, userID, topic string, startTime time.Time) (*models.MeetingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
