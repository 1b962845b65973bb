package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay возвращается при некорректном формате времени суток
var ErrInvalidTimeOfDay = errors.New("invalid time of day format")

// TimeOfDay время суток без даты и часового пояса (HH:MM:SS)
// Нулевое значение соответствует полуночи
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay создает TimeOfDay из time.Time (дата и часовой пояс отбрасываются)
func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay парсит строку "HH:MM" или "HH:MM:SS"
// Дробная часть секунд (PostgreSQL TIME может вернуть "17:00:00.000000") игнорируется
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	values := make([]int, 3)
	for i, part := range parts {
		if len(part) != 2 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		values[i] = v
	}

	t := TimeOfDay{Hour: values[0], Minute: values[1], Second: values[2]}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// MustParseTimeOfDay парсит время и паникует при ошибке (для констант и тестов)
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate проверяет, что компоненты времени в допустимых диапазонах
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidTimeOfDay, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidTimeOfDay, t.Minute)
	}
	if t.Second < 0 || t.Second > 59 {
		return fmt.Errorf("%w: second %d out of range", ErrInvalidTimeOfDay, t.Second)
	}
	return nil
}

// Seconds возвращает количество секунд с начала суток
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Seconds() < other.Seconds()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Seconds() > other.Seconds()
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Seconds() == other.Seconds()
}

// On возвращает момент времени: дата date в часовом поясе loc, время суток t
func (t TimeOfDay) On(date Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year, date.Month, date.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// Matches возвращает true, если показания часов at совпадают с t
// В день перевода часов вперед On сдвигает несуществующее время, и Matches дает false
func (t TimeOfDay) Matches(at time.Time) bool {
	return at.Hour() == t.Hour && at.Minute() == t.Minute && at.Second() == t.Second
}

// String возвращает время в формате HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Short возвращает время в формате HH:MM
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = NewTimeOfDay(v)
	case nil:
		*t = TimeOfDay{}
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeOfDay, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
