package create_availability

import (
	"context"

	createAvailability "github.com/timenest/timenest-api/internal/usecase/create_availability"
)

type CreateAvailabilityUseCase interface {
	Execute(ctx context.Context, req *createAvailability.Request) (*createAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
