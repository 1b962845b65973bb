package create_appointment

import (
	"time"

	createAppointment "github.com/timenest/timenest-api/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ToUserID    string `json:"toUserId" validate:"required"`
	PostID      string `json:"postId" validate:"required"`
	ScheduledAt string `json:"scheduledAt" validate:"required"` // RFC3339
	Topic       string `json:"topic,omitempty" validate:"max=200"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          string  `json:"id"`
	PostID      string  `json:"postId"`
	FromUserID  string  `json:"fromUserId"`
	ToUserID    string  `json:"toUserId"`
	ScheduledAt string  `json:"scheduledAt"`
	Status      string  `json:"status"`
	MeetingURL  *string `json:"meetingUrl,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(fromUserID string) (*createAppointment.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		FromUserID:  fromUserID,
		ToUserID:    r.ToUserID,
		PostID:      r.PostID,
		ScheduledAt: scheduledAt,
		Topic:       r.Topic,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		PostID:      resp.PostID,
		FromUserID:  resp.FromUserID,
		ToUserID:    resp.ToUserID,
		ScheduledAt: resp.ScheduledAt.UTC().Format(time.RFC3339),
		Status:      resp.Status,
		MeetingURL:  resp.MeetingURL,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
