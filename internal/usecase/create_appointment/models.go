package create_appointment

import "time"

// Request модель запроса на создание встречи
type Request struct {
	FromUserID  string    // Кто бронирует (из авторизации)
	ToUserID    string    // Владелец расписания
	PostID      string    // Публикация, из которой сделано бронирование
	ScheduledAt time.Time // Выбранный слот
	Topic       string    // Тема видеовстречи (опционально)
}

// Response модель ответа с созданной встречей
type Response struct {
	ID          string
	PostID      string
	FromUserID  string
	ToUserID    string
	ScheduledAt time.Time
	Status      string
	MeetingURL  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
