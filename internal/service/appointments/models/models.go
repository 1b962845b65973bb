package models

import (
	"time"

	"github.com/timenest/timenest-api/internal/domain"
)

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	FromUserID  string    `json:"fromUserId"`
	ToUserID    string    `json:"toUserId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	MeetingURL  *string   `json:"meetingUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AppointmentListResponse список встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID,
		PostID:      a.PostID,
		FromUserID:  a.FromUserID,
		ToUserID:    a.ToUserID,
		ScheduledAt: a.ScheduledAt,
		Status:      string(a.Status),
		MeetingURL:  a.MeetingURL,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список встреч
// Пустой список сериализуется как [], а не null
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
