package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/dbmetrics"
	"github.com/timenest/timenest-api/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	pqUniqueViolation       = "23505"
	pqSerializationFailure  = "40001"
	activeSlotUniqueIndexID = "uq_appointments_active_slot"
)

var columns = []string{
	"id",
	"post_id",
	"from_user_id",
	"to_user_id",
	"scheduled_at",
	"status",
	"meeting_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу
// Если в контексте передана активная транзакция, использует её.
//
// Уникальный индекс uq_appointments_active_slot не дает занять один и тот же момент
// владельца расписания дважды: такая вставка возвращает ErrSlotTaken, даже если
// слот выглядел свободным на момент расчета
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if appointment.Status == "" {
		appointment.Status = domain.StatusScheduled
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"post_id",
			"from_user_id",
			"to_user_id",
			"scheduled_at",
			"status",
			"meeting_url",
		).
		Values(
			appointment.ID,
			appointment.PostID,
			appointment.FromUserID,
			appointment.ToUserID,
			appointment.ScheduledAt.UTC(),
			appointment.Status,
			appointment.MeetingURL,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает встречу по ID
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// ListWithFilter получает встречи с гибкой фильтрацией, по возрастанию scheduled_at
// Поддерживает фильтрацию по:
// - Получателю (ToUserID) - встречи, забронированные у владельца расписания
// - Участнику (ParticipantID) - встречи, где пользователь отправитель или получатель
// - Периоду (From, Until) - опционально
// - Включению отмененных встреч (IncludeInactive)
//
// Примеры использования:
//
// 1. Активные встречи владельца расписания (для расчета слотов):
//    filter := domain.AppointmentsFilter{ToUserID: &ownerID}
//
// 2. Все встречи пользователя, включая отмененные:
//    filter := domain.AppointmentsFilter{ParticipantID: &userID, IncludeInactive: true}
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("scheduled_at ASC")

	if filter.ToUserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"to_user_id": *filter.ToUserID})
	}

	if filter.ParticipantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"from_user_id": *filter.ParticipantID},
			squirrel.Eq{"to_user_id": *filter.ParticipantID},
		})
	}

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_at": filter.From.UTC()})
	}

	if filter.Until != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_at": filter.Until.UTC()})
	}

	// Отмененные встречи слот не занимают
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusValues()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError("ListWithFilter", err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListByRecipient получает активные встречи, где пользователь - владелец расписания
func (r *Repository) ListByRecipient(ctx context.Context, ownerID string) ([]*domain.Appointment, error) {
	return r.ListWithFilter(ctx, domain.AppointmentsFilter{ToUserID: &ownerID})
}

// ListByParticipant получает все встречи пользователя (отправитель или получатель)
func (r *Repository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	return r.ListWithFilter(ctx, domain.AppointmentsFilter{ParticipantID: &userID, IncludeInactive: true})
}

// UpdateStatus обновляет статус встречи
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// SetMeetingURL сохраняет ссылку на видеовстречу
func (r *Repository) SetMeetingURL(ctx context.Context, id string, meetingURL string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("meeting_url", meetingURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMeetingURL - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetMeetingURL", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var meetingURL sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.PostID,
		&appointment.FromUserID,
		&appointment.ToUserID,
		&appointment.ScheduledAt,
		&appointment.Status,
		&meetingURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if meetingURL.Valid {
		appointment.MeetingURL = &meetingURL.String
	}
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс встреч
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func activeStatusValues() []string {
	values := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		values[i] = string(s)
	}
	return values
}

// mapWriteError переводит ошибки PostgreSQL в ошибки репозитория
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			if pqErr.Constraint == "" || pqErr.Constraint == activeSlotUniqueIndexID {
				return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
			}
		case pqSerializationFailure:
			return fmt.Errorf("%w: %s: %v", ErrSerializationConflict, op, err)
		}
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}

func mapReadError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqSerializationFailure {
		return fmt.Errorf("%w: %s: %v", ErrSerializationConflict, op, err)
	}
	return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
}
