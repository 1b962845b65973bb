package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment represents a booked meeting between two users
type Appointment struct {
	ID          string
	PostID      string // Публикация, из которой сделано бронирование
	FromUserID  string // Кто бронирует
	ToUserID    string // Владелец расписания
	ScheduledAt time.Time
	Status      AppointmentStatus
	MeetingURL  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still blocks its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// IsParticipant returns true if the user is the sender or the recipient
func (a *Appointment) IsParticipant(userID string) bool {
	return a.FromUserID == userID || a.ToUserID == userID
}

// AppointmentsFilter фильтр для выборки встреч
type AppointmentsFilter struct {
	ToUserID        *string    // Только встречи, где пользователь - получатель
	ParticipantID   *string    // Встречи, где пользователь отправитель или получатель
	From            *time.Time // Начиная с момента (включительно)
	Until           *time.Time // До момента (включительно)
	IncludeInactive bool       // Включать ли отмененные встречи
}
