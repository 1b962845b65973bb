package create_appointment

import "errors"

var (
	// ErrSelfBooking возвращается при попытке забронировать встречу с самим собой
	ErrSelfBooking = errors.New("create_appointment: cannot book an appointment with yourself")

	// ErrSlotNotAvailable возвращается, когда момент не является свободным слотом владельца
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrSlotTaken возвращается, когда слот занят параллельным бронированием
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
