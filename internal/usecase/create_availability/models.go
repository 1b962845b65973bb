package create_availability

import (
	"time"

	"github.com/timenest/timenest-api/pkg/types"
)

// Request модель запроса на создание правил доступности
// Пустые поля заменяются значениями по умолчанию (17:00-20:00, сегодня + 3 месяца)
type Request struct {
	OwnerID    string
	DaysOfWeek []int  // 0 = воскресенье ... 6 = суббота
	StartTime  string // "HH:MM" или "HH:MM:SS"
	EndTime    string
	ValidFrom  *types.Date
	ValidUntil *types.Date
}

// Response модель ответа с созданными правилами
type Response struct {
	Rules []Rule
}

// Rule созданное правило
type Rule struct {
	ID         string
	OwnerID    string
	DayOfWeek  int
	StartTime  types.TimeOfDay
	EndTime    types.TimeOfDay
	ValidFrom  types.Date
	ValidUntil types.Date
	CreatedAt  time.Time
}
