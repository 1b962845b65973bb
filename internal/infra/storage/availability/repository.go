package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/dbmetrics"
	"github.com/timenest/timenest-api/pkg/psqlbuilder"
)

const tableName = "availability"

// Время читается как текст, чтобы разбор происходил на границе домена (domain.AvailabilityRecord.ToRule)
var columns = []string{
	"id",
	"user_id",
	"day_of_week",
	"start_time::text",
	"end_time::text",
	"valid_from",
	"valid_until",
	"created_at",
}

// Repository репозиторий для работы с правилами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"user_id",
			"day_of_week",
			"start_time",
			"end_time",
			"valid_from",
			"valid_until",
		).
		Values(
			rule.ID,
			rule.OwnerID,
			rule.DayOfWeek,
			rule.StartTime,
			rule.EndTime,
			rule.ValidFrom,
			rule.ValidUntil,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	record, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return record, nil
}

// ListByOwner получает все правила пользователя
// Пустой список не является ошибкой
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.AvailabilityRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// Delete удаляет правило владельца
// Чужое или несуществующее правило возвращает ErrRuleNotFound
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.AvailabilityRecord, error) {
	var record domain.AvailabilityRecord
	var createdAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.DayOfWeek,
		&record.StartTime,
		&record.EndTime,
		&record.ValidFrom,
		&record.ValidUntil,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Time

	return &record, nil
}
