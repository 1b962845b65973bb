package meetingtoken

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/dbmetrics"
	"github.com/timenest/timenest-api/pkg/psqlbuilder"
)

const tableName = "zoom_tokens"

// Repository хранилище OAuth-токенов провайдера видеовстреч
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет токены пользователя, перезаписывая предыдущие
func (r *Repository) Upsert(ctx context.Context, token *domain.MeetingToken) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("user_id", "access_token", "refresh_token", "expires_at", "updated_at").
		Values(token.UserID, token.AccessToken, token.RefreshToken, token.ExpiresAt.UTC(), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"access_token = EXCLUDED.access_token, " +
			"refresh_token = EXCLUDED.refresh_token, " +
			"expires_at = EXCLUDED.expires_at, " +
			"updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByUserID получает токены пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*domain.MeetingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "access_token", "refresh_token", "expires_at", "updated_at").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var token domain.MeetingToken
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&token.UserID,
		&token.AccessToken,
		&token.RefreshToken,
		&token.ExpiresAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan token: %v", ErrScanRow, err)
	}

	token.UpdatedAt = updatedAt.Time

	return &token, nil
}
