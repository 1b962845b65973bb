package list_availability

import (
	"context"

	"github.com/timenest/timenest-api/internal/service/availability/models"
)

type AvailabilityService interface {
	List(ctx context.Context, ownerID string) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
