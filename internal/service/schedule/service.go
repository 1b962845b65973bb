package schedule

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/internal/service/slots"
	"github.com/timenest/timenest-api/pkg/dbmetrics"
)

// Service загружает расписание владельца и рассчитывает свободные слоты
type Service struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	resolver         *slots.Resolver
	horizon          slots.Horizon
	logger           Logger
}

// NewService создает сервис расчета расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	resolver *slots.Resolver,
	horizon slots.Horizon,
	logger Logger,
) *Service {
	if horizon.IsZero() {
		horizon = slots.DefaultHorizon()
	}
	return &Service{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		resolver:         resolver,
		horizon:          horizon,
		logger:           logger,
	}
}

// Resolver возвращает резолвер, которым рассчитываются слоты
func (s *Service) Resolver() *slots.Resolver {
	return s.resolver
}

// Compute рассчитывает свободные слоты владельца расписания на момент now
// Правила и встречи читаются параллельно (внутри транзакции - последовательно);
// расчет начинается после завершения обоих чтений.
// Ошибка любого чтения возвращается обернутой, без повторов
func (s *Service) Compute(ctx context.Context, ownerID string, now time.Time) (slots.Result, error) {
	var (
		records      []*domain.AvailabilityRecord
		appointments []*domain.Appointment
	)

	fetchRules := func(ctx context.Context) error {
		var err error
		records, err = s.availabilityRepo.ListByOwner(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAvailabilityFetch, err)
		}
		return nil
	}

	fetchAppointments := func(ctx context.Context) error {
		// Встречи до начала сегодняшнего дня не совпадут ни с одним слотом горизонта
		from := s.resolver.StartOfToday(now)
		var err error
		appointments, err = s.appointmentRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
			ToUserID: &ownerID,
			From:     &from,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAppointmentsFetch, err)
		}
		return nil
	}

	if dbmetrics.IsInTransaction(ctx) {
		// Одно соединение транзакции не выполняет запросы параллельно
		if err := fetchRules(ctx); err != nil {
			return slots.Result{}, err
		}
		if err := fetchAppointments(ctx); err != nil {
			return slots.Result{}, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return fetchRules(gctx) })
		g.Go(func() error { return fetchAppointments(gctx) })
		if err := g.Wait(); err != nil {
			return slots.Result{}, err
		}
	}

	rules := s.toRules(ownerID, records)

	taken := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		taken = append(taken, *a)
	}

	result := s.resolver.ResolveWithStats(ownerID, rules, taken, s.horizon, now)
	result.SkippedRules += len(records) - len(rules)

	return result, nil
}

// toRules разбирает записи хранилища в правила; некорректные записи пропускаются
func (s *Service) toRules(ownerID string, records []*domain.AvailabilityRecord) []domain.AvailabilityRule {
	rules := make([]domain.AvailabilityRule, 0, len(records))
	for _, record := range records {
		rule, err := record.ToRule()
		if err != nil {
			s.logger.Warn("Compute: skipping malformed availability for owner=%s: %v", ownerID, err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}
