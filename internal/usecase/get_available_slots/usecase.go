package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/timenest/timenest-api/internal/domain"
	slotsCache "github.com/timenest/timenest-api/internal/infra/cache/slots"
)

// UseCase use case для получения свободных слотов владельца расписания
type UseCase struct {
	schedule     ScheduleService
	cache        SlotsCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	schedule ScheduleService,
	cache SlotsCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedule:     schedule,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: owner=%s", req.OwnerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	resolver := uc.schedule.Resolver()
	today := resolver.Today(now)

	// 3. Пробуем кэш: слоты, рассчитанные сегодня, фильтруем по текущему времени
	// Поколение читается до расчета: сброс во время расчета уводит запись под устаревший ключ
	gen, genErr := uc.cache.Generation(ctx, req.OwnerID)
	if genErr != nil {
		// Недоступный кэш не мешает расчету
		uc.metrics.ObserveCache(false)
		uc.logger.Warn("GetAvailableSlots: cache generation read failed for owner=%s: %v", req.OwnerID, genErr)
	} else {
		cached, err := uc.cache.Get(ctx, req.OwnerID, gen, today)
		switch {
		case err == nil:
			uc.metrics.ObserveCache(true)
			result := resolver.Upcoming(cached, now)
			uc.logger.Info("GetAvailableSlots: %d slots from cache for owner=%s", len(result), req.OwnerID)
			return newResponse(req.OwnerID, result), nil
		case errors.Is(err, slotsCache.ErrCacheMiss):
			uc.metrics.ObserveCache(false)
		default:
			uc.metrics.ObserveCache(false)
			uc.logger.Warn("GetAvailableSlots: cache read failed for owner=%s: %v", req.OwnerID, err)
		}
	}

	// 4. Читаем правила и встречи, рассчитываем слоты
	result, err := uc.schedule.Compute(ctx, req.OwnerID, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to load schedule: %w", ErrInternal, err)
	}

	uc.metrics.ObserveSlotResolution(len(result.Slots), result.SkippedRules)
	if result.SkippedRules > 0 {
		uc.logger.Warn("GetAvailableSlots: skipped %d malformed rules for owner=%s", result.SkippedRules, req.OwnerID)
	}

	// 5. Сохраняем в кэш под прочитанным поколением
	if genErr == nil {
		if err := uc.cache.Set(ctx, req.OwnerID, gen, today, result.Slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed for owner=%s: %v", req.OwnerID, err)
		}
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for owner=%s", len(result.Slots), req.OwnerID)
	return newResponse(req.OwnerID, result.Slots), nil
}

func newResponse(ownerID string, bookable []domain.BookableSlot) *Response {
	resp := &Response{
		OwnerID: ownerID,
		Slots:   make([]Slot, 0, len(bookable)),
	}
	for _, s := range bookable {
		resp.Slots = append(resp.Slots, Slot{StartsAt: s.StartsAt, DisplayLabel: s.DisplayLabel})
	}
	return resp
}
