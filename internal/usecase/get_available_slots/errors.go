package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// (в том числе при ошибке чтения правил или встреч)
	ErrInternal = errors.New("usecase: internal error")
)
