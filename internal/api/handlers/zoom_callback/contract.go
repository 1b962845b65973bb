package zoom_callback

import "context"

type MeetingService interface {
	HandleCallback(ctx context.Context, code, state string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
