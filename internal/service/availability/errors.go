package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено или принадлежит другому пользователю
	ErrRuleNotFound = errors.New("availability rule not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
