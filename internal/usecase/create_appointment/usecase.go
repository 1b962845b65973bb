package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timenest/timenest-api/internal/domain"
	appointmentRepo "github.com/timenest/timenest-api/internal/infra/storage/appointment"
	"github.com/timenest/timenest-api/pkg/txmanager"
)

// UseCase use case для бронирования встречи
type UseCase struct {
	appointmentRepo AppointmentRepository
	schedule        ScheduleService
	meetings        MeetingService
	cache           SlotsCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// meetings может быть nil: тогда видеовстреча при бронировании не создается
func NewUseCase(
	appointmentRepo AppointmentRepository,
	schedule ScheduleService,
	meetings MeetingService,
	cache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		schedule:        schedule,
		meetings:        meetings,
		cache:           cache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case бронирования встречи
// Свободность слота проверяется в сериализуемой транзакции; окончательно гонку
// закрывает уникальный индекс (to_user_id, scheduled_at) для активных встреч
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: from=%s, to=%s, post=%s, at=%s",
		req.FromUserID, req.ToUserID, req.PostID, req.ScheduledAt.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Пересчитываем свободные слоты владельца
		resolved, err := uc.schedule.Compute(txCtx, req.ToUserID, now)
		if err != nil {
			if isConflict(err) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to load schedule for owner=%s: %v", req.ToUserID, err)
			return fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
		}

		// 3.2. Выбранный момент должен быть свободным слотом
		if !containsInstant(resolved.Slots, req.ScheduledAt) {
			uc.logger.Warn("CreateAppointment: %s is not a bookable slot of owner=%s",
				req.ScheduledAt.UTC().Format(time.RFC3339), req.ToUserID)
			return ErrSlotNotAvailable
		}

		// 3.3. Создаем встречу
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			PostID:      req.PostID,
			FromUserID:  req.FromUserID,
			ToUserID:    req.ToUserID,
			ScheduledAt: req.ScheduledAt,
			Status:      domain.StatusScheduled,
		})
		if err != nil {
			if isConflict(err) {
				uc.logger.Warn("CreateAppointment: slot %s of owner=%s taken concurrently",
					req.ScheduledAt.UTC().Format(time.RFC3339), req.ToUserID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, ErrSlotTaken), errors.Is(err, ErrInternal):
			return nil, err
		case isConflict(err):
			// Конфликт сериализации при фиксации транзакции
			uc.logger.Warn("CreateAppointment: serialization conflict for owner=%s: %v", req.ToUserID, err)
			return nil, ErrSlotTaken
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 4. Слот больше не свободен
	if err := uc.cache.Invalidate(ctx, req.ToUserID); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate slots cache for owner=%s: %v", req.ToUserID, err)
	}

	// 5. Видеовстреча; ошибка не отменяет бронирование
	uc.attachMeeting(ctx, req, result)

	return toResponse(result), nil
}

// attachMeeting создает видеовстречу от имени владельца расписания и сохраняет ссылку
func (uc *UseCase) attachMeeting(ctx context.Context, req *Request, appointment *domain.Appointment) {
	if uc.meetings == nil {
		return
	}

	topic := req.Topic
	if topic == "" {
		topic = domain.DefaultMeetingTopic
	}

	meeting, err := uc.meetings.CreateMeeting(ctx, appointment.ToUserID, topic, appointment.ScheduledAt)
	if err != nil {
		uc.logger.Warn("CreateAppointment: meeting not created for appointment id=%s: %v", appointment.ID, err)
		return
	}

	if err := uc.appointmentRepo.SetMeetingURL(ctx, appointment.ID, meeting.JoinURL); err != nil {
		uc.logger.Error("CreateAppointment: failed to store meeting url for appointment id=%s: %v", appointment.ID, err)
		return
	}

	joinURL := meeting.JoinURL
	appointment.MeetingURL = &joinURL
}

// containsInstant проверяет точное совпадение момента со слотом
func containsInstant(bookable []domain.BookableSlot, at time.Time) bool {
	for _, s := range bookable {
		if s.StartsAt.Equal(at) {
			return true
		}
	}
	return false
}

// isConflict распознает конкурентное бронирование того же слота
func isConflict(err error) bool {
	return errors.Is(err, appointmentRepo.ErrSlotTaken) ||
		errors.Is(err, appointmentRepo.ErrSerializationConflict) ||
		errors.Is(err, txmanager.ErrSerializationFailure)
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:          a.ID,
		PostID:      a.PostID,
		FromUserID:  a.FromUserID,
		ToUserID:    a.ToUserID,
		ScheduledAt: a.ScheduledAt,
		Status:      string(a.Status),
		MeetingURL:  a.MeetingURL,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
