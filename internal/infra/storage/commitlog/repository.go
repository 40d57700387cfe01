package commitlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	"github.com/m04kA/SMC-RentalWizard/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalWizard/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// Repository репозиторий журнала попыток коммита бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись журнала со статусом pending
// Если в контексте передана активная транзакция, использует её.
// Вставка под сериализуемой транзакцией вместе с GetByKey защищает
// от гонки двух параллельных отправок одной и той же сессии
func (r *Repository) Create(ctx context.Context, attempt *domain.CommitAttempt) (*domain.CommitAttempt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_commits").
		Columns(
			"idempotency_key",
			"session_id",
			"user_id",
			"item_type",
			"item_id",
			"status",
			"reservation_id",
		).
		Values(
			attempt.IdempotencyKey,
			attempt.SessionID,
			attempt.UserID,
			attempt.ItemType,
			attempt.ItemID,
			attempt.Status,
			attempt.ReservationID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	attempt.CreatedAt = createdAt.Time
	attempt.UpdatedAt = updatedAt.Time

	return attempt, nil
}

// GetByKey возвращает запись журнала по ключу идемпотентности
func (r *Repository) GetByKey(ctx context.Context, idempotencyKey string) (*domain.CommitAttempt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"idempotency_key",
		"session_id",
		"user_id",
		"item_type",
		"item_id",
		"status",
		"reservation_id",
		"created_at",
		"updated_at",
	).
		From("reservation_commits").
		Where(squirrel.Eq{"idempotency_key": idempotencyKey}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	var attempt domain.CommitAttempt
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&attempt.IdempotencyKey,
		&attempt.SessionID,
		&attempt.UserID,
		&attempt.ItemType,
		&attempt.ItemID,
		&attempt.Status,
		&attempt.ReservationID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCommitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan commit attempt: %v", ErrScanRow, err)
	}

	attempt.CreatedAt = createdAt.Time
	attempt.UpdatedAt = updatedAt.Time

	return &attempt, nil
}

// MarkCommitted помечает запись успешно закоммиченной и сохраняет ID бронирования
func (r *Repository) MarkCommitted(ctx context.Context, idempotencyKey, reservationID string) error {
	return r.updateStatus(ctx, idempotencyKey, domain.CommitCommitted, &reservationID)
}

// MarkFailed помечает запись неуспешной
// Повторная отправка с тем же ключом после этого разрешена
func (r *Repository) MarkFailed(ctx context.Context, idempotencyKey string) error {
	return r.updateStatus(ctx, idempotencyKey, domain.CommitFailed, nil)
}

func (r *Repository) updateStatus(ctx context.Context, idempotencyKey string, status domain.CommitStatus, reservationID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("reservation_commits").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"idempotency_key": idempotencyKey})

	if reservationID != nil {
		builder = builder.Set("reservation_id", *reservationID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: updateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: updateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCommitNotFound
	}

	return nil
}
