package schedule

import "errors"

var (
	// ErrAvailabilityFetch возвращается при ошибке чтения правил доступности
	ErrAvailabilityFetch = errors.New("schedule: failed to fetch availability")

	// ErrAppointmentsFetch возвращается при ошибке чтения встреч
	ErrAppointmentsFetch = errors.New("schedule: failed to fetch appointments")
)
