package create_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/types"
)

// UseCase use case для создания правил доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	cache            SlotsCache
	txManager        TransactionManager
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// location определяет «сегодня» для значений по умолчанию (nil - UTC)
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	cache SlotsCache,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		cache:            cache,
		txManager:        txManager,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute создает по одному правилу на каждый выбранный день недели в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAvailability: owner=%s, days=%v, time=%s-%s",
		req.OwnerID, req.DaysOfWeek, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Подставляем значения по умолчанию
	start, err := parseTimeOrDefault(req.StartTime, domain.DefaultAvailabilityStart, "startTime")
	if err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}
	end, err := parseTimeOrDefault(req.EndTime, domain.DefaultAvailabilityEnd, "endTime")
	if err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	today := types.DateOf(uc.timeProvider.Now().In(uc.location))
	validFrom := today
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}
	validUntil := validFrom.AddDate(0, domain.DefaultAvailabilityMonths, 0)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	// 3. Строим правила и проверяем окно на этапе записи
	rules := make([]*domain.AvailabilityRule, 0, len(req.DaysOfWeek))
	for _, day := range req.DaysOfWeek {
		rule := &domain.AvailabilityRule{
			OwnerID:    req.OwnerID,
			DayOfWeek:  day,
			StartTime:  start,
			EndTime:    end,
			ValidFrom:  validFrom,
			ValidUntil: validUntil,
		}
		if err := rule.ValidateWindow(); err != nil {
			uc.logger.Warn("CreateAvailability: invalid rule: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rules = append(rules, rule)
	}

	// 4. Сохраняем все правила в одной транзакции
	created := make([]*domain.AvailabilityRule, 0, len(rules))
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, rule := range rules {
			saved, err := uc.availabilityRepo.Create(txCtx, rule)
			if err != nil {
				uc.logger.Error("CreateAvailability: failed to create rule for day=%d: %v", rule.DayOfWeek, err)
				return fmt.Errorf("%w: failed to create rule: %v", ErrInternal, err)
			}
			created = append(created, saved)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 5. Сбрасываем кэш слотов владельца
	if err := uc.cache.Invalidate(ctx, req.OwnerID); err != nil {
		uc.logger.Warn("CreateAvailability: failed to invalidate slots cache for owner=%s: %v", req.OwnerID, err)
	}

	uc.logger.Info("CreateAvailability: created %d rules for owner=%s", len(created), req.OwnerID)

	resp := &Response{Rules: make([]Rule, 0, len(created))}
	for _, r := range created {
		resp.Rules = append(resp.Rules, Rule{
			ID:         r.ID,
			OwnerID:    r.OwnerID,
			DayOfWeek:  r.DayOfWeek,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			ValidFrom:  r.ValidFrom,
			ValidUntil: r.ValidUntil,
			CreatedAt:  r.CreatedAt,
		})
	}
	return resp, nil
}
