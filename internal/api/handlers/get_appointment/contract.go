package get_appointment

import (
	"context"

	"github.com/timenest/timenest-api/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, appointmentID, userID string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
