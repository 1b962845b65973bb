package create_appointment

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.FromUserID) == "" {
		return fmt.Errorf("%w: fromUserId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ToUserID) == "" {
		return fmt.Errorf("%w: toUserId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.PostID) == "" {
		return fmt.Errorf("%w: postId is required", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if req.FromUserID == req.ToUserID {
		return ErrSelfBooking
	}

	return nil
}
