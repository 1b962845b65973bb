package domain

// Default configuration values
const (
	DefaultHorizonMonths      = 3 // Горизонт расчета слотов
	DefaultAvailabilityMonths = 3 // validUntil по умолчанию: сегодня + 3 месяца
	DefaultAvailabilityStart  = "17:00:00"
	DefaultAvailabilityEnd    = "20:00:00"
	DefaultMeetingTopic       = "TimeNest"
)

// Business validation constants
const (
	MinDayOfWeek       = 0 // Sunday
	MaxDayOfWeek       = 6 // Saturday
	MaxHorizonMonths   = 12
	MaxMeetingTopicLen = 200
)

// Time format constants
const (
	TimeFormat         = "15:04:05"           // HH:MM:SS
	DateFormat         = "2006-01-02"         // YYYY-MM-DD
	DisplayLabelLayout = "2/1/2006, 15:04:05" // es-ES toLocaleString
)

// ActiveStatuses статусы встреч, которые занимают слот
// Используется для фильтрации при расчете доступных слотов
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
}
