package create_availability

import (
	"fmt"
	"strings"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.OwnerID) == "" {
		return fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	if len(req.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: at least one day of week is required", ErrInvalidInput)
	}

	seen := make(map[int]struct{}, len(req.DaysOfWeek))
	for _, day := range req.DaysOfWeek {
		if day < domain.MinDayOfWeek || day > domain.MaxDayOfWeek {
			return fmt.Errorf("%w: %v: got %d", ErrInvalidInput, domain.ErrInvalidDayOfWeek, day)
		}
		if _, ok := seen[day]; ok {
			return fmt.Errorf("%w: duplicate day of week %d", ErrInvalidInput, day)
		}
		seen[day] = struct{}{}
	}

	return nil
}

// parseTimeOrDefault разбирает время; пустая строка заменяется значением по умолчанию
func parseTimeOrDefault(value, fallback, field string) (types.TimeOfDay, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	t, err := types.ParseTimeOfDay(value)
	if err != nil {
		return types.TimeOfDay{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return t, nil
}
