package models

import (
	"time"

	"github.com/timenest/timenest-api/internal/domain"
)

// AuthURLResponse адрес страницы авторизации Zoom
type AuthURLResponse struct {
	URL string `json:"url"`
}

// MeetingResponse созданная встреча
type MeetingResponse struct {
	ID        int64     `json:"id"`
	Topic     string    `json:"topic"`
	StartTime time.Time `json:"startTime"`
	JoinURL   string    `json:"joinUrl"`
}

// FromDomainMeeting конвертирует domain.Meeting в ответ
func FromDomainMeeting(m *domain.Meeting) *MeetingResponse {
	return &MeetingResponse{
		ID:        m.ID,
		Topic:     m.Topic,
		StartTime: m.StartTime,
		JoinURL:   m.JoinURL,
	}
}
