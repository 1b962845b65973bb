package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate возвращается при некорректной календарной дате
var ErrInvalidDate = errors.New("invalid calendar date")

const dateLayout = "2006-01-02"

// Date календарная дата без времени и часового пояса
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf возвращает календарную дату момента t в его часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate создает нормализованную дату (32 января -> 1 февраля)
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// MustParseDate парсит дату и паникует при ошибке (для констант и тестов)
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true для нулевой даты
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// midnightUTC полночь даты в UTC; разница двух таких моментов всегда кратна 24 часам
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// In возвращает полночь даты в часовом поясе loc
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDate работает как time.Time.AddDate, включая нормализацию конца месяца
func (d Date) AddDate(years, months, days int) Date {
	return DateOf(d.midnightUTC().AddDate(years, months, days))
}

func (d Date) AddDays(days int) Date {
	return d.AddDate(0, 0, days)
}

func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// Compare возвращает -1, 0 или +1
func (d Date) Compare(other Date) int {
	return d.midnightUTC().Compare(other.midnightUTC())
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) Equal(other Date) bool {
	return d.Compare(other) == 0
}

// Within проверяет from <= d <= until (обе границы включительно)
func (d Date) Within(from, until Date) bool {
	return !d.Before(from) && !d.After(until)
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()) / (24 * time.Hour))
}

// DatesBetween возвращает все даты от from до to включительно
// Если to раньше from, возвращается пустой срез
func DatesBetween(from, to Date) []Date {
	count := from.DaysUntil(to) + 1
	if count <= 0 {
		return []Date{}
	}

	dates := make([]Date, count)
	for i := 0; i < count; i++ {
		dates[i] = from.AddDays(i)
	}
	return dates
}

func (d Date) String() string {
	return d.midnightUTC().Format(dateLayout)
}

// Scan реализует sql.Scanner для колонок типа DATE
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDate, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
