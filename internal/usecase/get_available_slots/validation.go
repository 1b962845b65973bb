package get_available_slots

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.OwnerID) == "" {
		return fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	return nil
}
