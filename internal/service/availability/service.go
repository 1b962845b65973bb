package availability

import (
	"context"
	"errors"
	"fmt"

	availabilityRepo "github.com/timenest/timenest-api/internal/infra/storage/availability"
	"github.com/timenest/timenest-api/internal/service/availability/models"
)

// Service сервис для работы с правилами доступности
type Service struct {
	availabilityRepo AvailabilityRepository
	slotsCache       SlotsCache
	logger           Logger
}

// NewService создает новый экземпляр сервиса правил доступности
func NewService(availabilityRepo AvailabilityRepository, slotsCache SlotsCache, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		slotsCache:       slotsCache,
		logger:           logger,
	}
}

// List возвращает правила доступности пользователя
func (s *Service) List(ctx context.Context, ownerID string) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching availability for user=%s", ownerID)

	records, err := s.availabilityRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecordList(records), nil
}

// Delete удаляет правило доступности
// Удалить правило может только его владелец; чужое правило неотличимо от отсутствующего
func (s *Service) Delete(ctx context.Context, ownerID, ruleID string) error {
	s.logger.Info("Delete: deleting rule id=%s for user=%s", ruleID, ownerID)

	if err := s.availabilityRepo.Delete(ctx, ownerID, ruleID); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%s not found for user=%s", ruleID, ownerID)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%s: %v", ruleID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.slotsCache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn("Delete: failed to invalidate slots cache for owner=%s: %v", ownerID, err)
	}

	s.logger.Info("Delete: successfully deleted rule id=%s", ruleID)
	return nil
}
