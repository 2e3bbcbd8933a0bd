package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facedesk/booking-api/internal/entity"
)

// ErrDuplicateDelivery is returned when a delivery id was already recorded.
var ErrDuplicateDelivery = errors.New("email delivery already recorded")

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// EmailDeliveriesRepository stores the outcome of email dispatch attempts.
type EmailDeliveriesRepository interface {
	Record(ctx context.Context, delivery entity.EmailDelivery) error
}

// PGXEmailDeliveriesRepository implements EmailDeliveriesRepository with pgx.
type PGXEmailDeliveriesRepository struct {
	pool pgxPool
}

// NewPGXEmailDeliveriesRepository wires a pgx backed delivery log.
func NewPGXEmailDeliveriesRepository(pool *pgxpool.Pool) *PGXEmailDeliveriesRepository {
	return &PGXEmailDeliveriesRepository{pool: pool}
}

// Record inserts a single delivery row.
func (r *PGXEmailDeliveriesRepository) Record(ctx context.Context, delivery entity.EmailDelivery) error {
	query, args, err := psql.Insert("email_deliveries").
		Columns("id", "provider_message_id", "recipients", "subject", "status", "error", "created_at").
		Values(delivery.ID, delivery.ProviderMessageID, delivery.Recipients, delivery.Subject, string(delivery.Status), delivery.Error, delivery.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delivery insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %v", ErrDuplicateDelivery, pgErr)
		}
		return fmt.Errorf("insert email delivery: %w", err)
	}
	return nil
}
