package zoom

import "errors"

var (
	// ErrNotConfigured возвращается, если не заданы client id/secret
	ErrNotConfigured = errors.New("zoom client: not configured")

	// ErrExchangeFailed возвращается, если не удалось обменять код авторизации на токены
	ErrExchangeFailed = errors.New("zoom client: authorization code exchange failed")

	// ErrUnauthorized возвращается, если токены отозваны или не удалось их обновить
	ErrUnauthorized = errors.New("zoom client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("zoom client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Zoom API
	ErrInvalidResponse = errors.New("zoom client: invalid response")
)
