package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	OwnerID string // Владелец расписания
}

// Response модель ответа со списком доступных слотов
// Пустой список - это «нет свободного времени», а не ошибка
type Response struct {
	OwnerID string
	Slots   []Slot
}

// Slot модель свободного слота
type Slot struct {
	StartsAt     time.Time // Момент начала встречи
	DisplayLabel string    // Подпись для отображения (es-ES)
}
