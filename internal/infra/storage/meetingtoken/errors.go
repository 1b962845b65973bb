package meetingtoken

import "errors"

var (
	// ErrTokenNotFound возвращается, когда у пользователя нет сохраненных токенов
	ErrTokenNotFound = errors.New("meetingtoken.repository: token not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("meetingtoken.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("meetingtoken.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("meetingtoken.repository: failed to scan row")
)
