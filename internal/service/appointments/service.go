package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/timenest/timenest-api/internal/domain"
	appointmentRepo "github.com/timenest/timenest-api/internal/infra/storage/appointment"
	"github.com/timenest/timenest-api/internal/service/appointments/models"
)

// Service сервис для работы с встречами
type Service struct {
	appointmentRepo AppointmentRepository
	slotsCache      SlotsCache
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	appointmentRepo AppointmentRepository,
	slotsCache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		slotsCache:      slotsCache,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID возвращает встречу; видеть ее могут только участники
func (s *Service) GetByID(ctx context.Context, appointmentID, userID string) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !appointment.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, appointmentID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments возвращает встречи, где пользователь отправитель или получатель
// Упорядочены по времени встречи по возрастанию, включая отмененные
func (s *Service) GetUserAppointments(ctx context.Context, userID string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%s", userID)

	list, err := s.appointmentRepo.ListByParticipant(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%s", len(list), userID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет встречу
// Отменить может только участник и только запланированную встречу.
// Отмененная встреча перестает занимать слот владельца расписания
func (s *Service) Cancel(ctx context.Context, appointmentID, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", appointmentID, userID)

	var cancelled *domain.Appointment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// Получаем встречу (FOR UPDATE внутри транзакции)
		appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%s not found", appointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !appointment.IsParticipant(userID) {
			s.logger.Warn("Cancel: access denied for user=%s to appointment id=%s", userID, appointmentID)
			return ErrAccessDenied
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appointmentID, appointment.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - failed to update status: %v", ErrInternal, err)
		}

		appointment.Status = domain.StatusCancelled
		cancelled = appointment
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Cancel: failed to cancel appointment id=%s: %v", appointmentID, err)
		}
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrAccessDenied) ||
			errors.Is(err, ErrCannotCancel) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	// Слот снова свободен
	if err := s.slotsCache.Invalidate(ctx, cancelled.ToUserID); err != nil {
		s.logger.Warn("Cancel: failed to invalidate slots cache for owner=%s: %v", cancelled.ToUserID, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", appointmentID)
	return models.FromDomainAppointment(cancelled), nil
}
