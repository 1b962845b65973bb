package create_meeting

import "time"

// CreateMeetingRequest HTTP request model
type CreateMeetingRequest struct {
	Topic     string `json:"topic,omitempty" validate:"max=200"`
	StartTime string `json:"start_time" validate:"required"` // RFC3339
}

// ParseStartTime разбирает время начала встречи
func (r *CreateMeetingRequest) ParseStartTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.StartTime)
}
