package meetings

import "errors"

var (
	// ErrNoTokens возвращается, если пользователь не подключил Zoom
	ErrNoTokens = errors.New("no Zoom tokens found")

	// ErrInvalidState возвращается при некорректном или просроченном state в OAuth callback
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotConfigured возвращается, если интеграция с Zoom не настроена
	ErrNotConfigured = errors.New("zoom integration is not configured")

	// ErrUpstream возвращается при ошибке взаимодействия с Zoom
	ErrUpstream = errors.New("zoom upstream error")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
