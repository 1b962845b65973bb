package slots

import (
	"sort"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/types"
)

// DefaultResolution точность сравнения моментов времени
const DefaultResolution = time.Second

// Horizon окно расчета слотов от текущей даты (включительно)
type Horizon struct {
	Months int
	Days   int
}

// DefaultHorizon горизонт по умолчанию - 3 календарных месяца
func DefaultHorizon() Horizon {
	return Horizon{Months: domain.DefaultHorizonMonths}
}

// End возвращает последнюю дату горизонта для стартовой даты from
func (h Horizon) End(from types.Date) types.Date {
	return from.AddDate(0, h.Months, h.Days)
}

// IsZero возвращает true, если горизонт не задан
func (h Horizon) IsZero() bool {
	return h.Months == 0 && h.Days == 0
}

// Options параметры резолвера
type Options struct {
	// Location часовой пояс, в котором интерпретируются даты и время правил (по умолчанию UTC)
	Location *time.Location

	// Resolution точность построения и сравнения моментов (по умолчанию секунда)
	Resolution time.Duration

	// HidePast отбрасывает слоты раньше now + MinNotice
	HidePast  bool
	MinNotice time.Duration

	// Label форматирует подпись слота (по умолчанию es-ES)
	Label func(time.Time) string
}

// Result результат расчета с диагностикой
type Result struct {
	Slots        []domain.BookableSlot
	SkippedRules int // Некорректные правила, пропущенные при расчете
}

// Resolver вычисляет доступные для бронирования слоты владельца расписания
// Не хранит изменяемого состояния, безопасен для конкурентного использования
type Resolver struct {
	location   *time.Location
	resolution time.Duration
	hidePast   bool
	minNotice  time.Duration
	label      func(time.Time) string
}

// NewResolver создает резолвер, подставляя значения по умолчанию для пустых опций
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		location:   opts.Location,
		resolution: opts.Resolution,
		hidePast:   opts.HidePast,
		minNotice:  opts.MinNotice,
		label:      opts.Label,
	}
	if r.location == nil {
		r.location = time.UTC
	}
	if r.resolution <= 0 {
		r.resolution = DefaultResolution
	}
	if r.label == nil {
		r.label = domain.DefaultDisplayLabel
	}
	return r
}

var defaultResolver = NewResolver(Options{})

// ResolveSlots вычисляет слоты с настройками по умолчанию (UTC, точность до секунды)
func ResolveSlots(
	ownerID string,
	rules []domain.AvailabilityRule,
	appointments []domain.Appointment,
	horizon Horizon,
	now time.Time,
) []domain.BookableSlot {
	return defaultResolver.Resolve(ownerID, rules, appointments, horizon, now)
}

// Resolve возвращает слоты, упорядоченные по возрастанию без дубликатов
func (r *Resolver) Resolve(
	ownerID string,
	rules []domain.AvailabilityRule,
	appointments []domain.Appointment,
	horizon Horizon,
	now time.Time,
) []domain.BookableSlot {
	return r.ResolveWithStats(ownerID, rules, appointments, horizon, now).Slots
}

// ResolveWithStats выполняет расчет слотов:
// 1. Строит множество занятых моментов из встреч владельца
// 2. Перебирает даты от сегодняшней до конца горизонта включительно
// 3. Для каждой пары (дата, правило) строит кандидата дата + startTime
//    (несуществующее местное время в день перевода часов пропускается)
// 4. Отбрасывает занятые моменты
// 5. Сортирует по возрастанию и удаляет дубликаты
func (r *Resolver) ResolveWithStats(
	ownerID string,
	rules []domain.AvailabilityRule,
	appointments []domain.Appointment,
	horizon Horizon,
	now time.Time,
) Result {
	if horizon.IsZero() {
		horizon = DefaultHorizon()
	}

	// Шаг 1: занятые моменты
	taken := make(map[int64]struct{}, len(appointments))
	for i := range appointments {
		appt := &appointments[i]
		if appt.ToUserID != "" && appt.ToUserID != ownerID {
			continue
		}
		taken[r.key(appt.ScheduledAt)] = struct{}{}
	}

	// Некорректные и чужие правила не участвуют в расчете
	applicable := make([]domain.AvailabilityRule, 0, len(rules))
	skipped := 0
	for _, rule := range rules {
		if rule.OwnerID != "" && rule.OwnerID != ownerID {
			continue
		}
		if err := rule.Validate(); err != nil {
			skipped++
			continue
		}
		applicable = append(applicable, rule)
	}

	today := r.Today(now)
	dates := types.DatesBetween(today, horizon.End(today))
	earliest := now.Add(r.minNotice)

	// Шаги 2-4: декартово произведение дат и правил
	seen := make(map[int64]struct{})
	candidates := make([]time.Time, 0)
	for _, date := range dates {
		for i := range applicable {
			rule := &applicable[i]
			if !rule.AppliesOn(date) {
				continue
			}

			startsAt := rule.StartTime.On(date, r.location)
			// Время попало в переход на летнее время и не существует в этот день
			if !rule.StartTime.Matches(startsAt) {
				continue
			}
			startsAt = startsAt.Truncate(r.resolution)
			key := r.key(startsAt)
			if _, ok := taken[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			if r.hidePast && startsAt.Before(earliest) {
				continue
			}

			seen[key] = struct{}{}
			candidates = append(candidates, startsAt)
		}
	}

	// Шаг 5: сортировка (дубликаты уже отброшены через seen)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})

	slots := make([]domain.BookableSlot, len(candidates))
	for i, startsAt := range candidates {
		slots[i] = domain.BookableSlot{
			StartsAt:     startsAt,
			DisplayLabel: r.label(startsAt),
		}
	}

	return Result{Slots: slots, SkippedRules: skipped}
}

// key ключ момента времени с учетом точности; не зависит от часового пояса
func (r *Resolver) key(t time.Time) int64 {
	return t.Truncate(r.resolution).UnixNano()
}

// Upcoming повторно применяет HidePast к ранее рассчитанным слотам (например, из кэша)
// Без HidePast возвращает слоты без изменений
func (r *Resolver) Upcoming(slots []domain.BookableSlot, now time.Time) []domain.BookableSlot {
	if !r.hidePast {
		return slots
	}

	earliest := now.Add(r.minNotice)
	result := make([]domain.BookableSlot, 0, len(slots))
	for _, s := range slots {
		if s.StartsAt.Before(earliest) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// StartOfToday возвращает начало календарного дня now в часовом поясе резолвера
// Раньше этого момента не начинается ни один слот, рассчитанный на now
func (r *Resolver) StartOfToday(now time.Time) time.Time {
	return types.TimeOfDay{}.On(r.Today(now), r.location)
}

// Today возвращает календарную дату now в часовом поясе резолвера
func (r *Resolver) Today(now time.Time) types.Date {
	return types.DateOf(now.In(r.location))
}
