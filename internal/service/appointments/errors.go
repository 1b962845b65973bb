package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не участвует во встрече
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда встреча не может быть отменена
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
