// Package postgres implements the service-layer storage contracts
// against PostgreSQL using database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/pkg/logger"
	"github.com/ignite/newsletter/internal/service/newsletter"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// pq error code for unique constraint violations
const uniqueViolation = "23505"

// SubscriberRepo implements subscription.Repository and
// newsletter.SubscriberSource against PostgreSQL.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Begin opens a transaction for the subscribe flow.
func (r *SubscriberRepo) Begin(ctx context.Context) (subscription.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &subscriberTx{tx: tx}, nil
}

// subscriberTx scopes the paired subscriber+token writes to one
// database transaction.
type subscriberTx struct{ tx *sql.Tx }

func (t *subscriberTx) InsertSubscriber(ctx context.Context, sub domain.NewSubscriber) (uuid.UUID, error) {
	id := uuid.New()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, id, sub.Email.String(), sub.Name.String(), time.Now().UTC(), domain.SubscriberPending)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("insert subscriber: %w", subscription.ErrDuplicateEmail)
		}
		return uuid.Nil, fmt.Errorf("insert subscriber: %w", err)
	}
	return id, nil
}

func (t *subscriberTx) StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO subscription_tokens (token, subscriber_id, created_at)
		VALUES ($1, $2, $3)
	`, token, subscriberID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("store token: %w", subscription.ErrDuplicateToken)
		}
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (t *subscriberTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (t *subscriberTx) Rollback() error {
	err := t.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// SubscriberIDFromToken resolves a token to its owner. Absence is not
// an error: found=false tells the caller the token never existed.
func (r *SubscriberRepo) SubscriberIDFromToken(ctx context.Context, token string) (uuid.UUID, time.Time, bool, error) {
	var id uuid.UUID
	var issuedAt time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT subscriber_id, created_at FROM subscription_tokens WHERE token = $1
	`, token).Scan(&id, &issuedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, time.Time{}, false, nil
	}
	if err != nil {
		return uuid.Nil, time.Time{}, false, fmt.Errorf("look up token: %w", err)
	}
	return id, issuedAt, true, nil
}

// ConfirmSubscriber promotes a subscriber to confirmed. The WHERE clause
// makes repeats no-ops and guarantees the status never moves backwards.
func (r *SubscriberRepo) ConfirmSubscriber(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = $1 WHERE id = $2 AND status = $3
	`, domain.SubscriberConfirmed, id, domain.SubscriberPending)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	return nil
}

// ConfirmedSubscribers opens a lazy cursor over the confirmed audience.
// Each row's stored email is re-validated at read time; rows predating
// today's validation rules yield a per-row error instead of poisoning
// the whole result.
func (r *SubscriberRepo) ConfirmedSubscribers(ctx context.Context) (newsletter.SubscriberIterator, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email FROM subscriptions WHERE status = $1
	`, domain.SubscriberConfirmed)
	if err != nil {
		return nil, fmt.Errorf("query confirmed subscribers: %w", err)
	}
	return &confirmedRows{rows: rows}, nil
}

// confirmedRows is a single-pass cursor over confirmed rows.
// It satisfies newsletter.SubscriberIterator.
type confirmedRows struct{ rows *sql.Rows }

// Next advances the cursor.
func (c *confirmedRows) Next() bool { return c.rows.Next() }

// Subscriber returns the current row's re-validated address, or the
// reason the row is unusable.
func (c *confirmedRows) Subscriber() (domain.SubscriberEmail, error) {
	var raw string
	if err := c.rows.Scan(&raw); err != nil {
		return domain.SubscriberEmail{}, fmt.Errorf("scan subscriber row: %w", err)
	}
	addr, err := domain.ParseSubscriberEmail(raw)
	if err != nil {
		return domain.SubscriberEmail{}, fmt.Errorf("stored email %s failed validation: %w", logger.RedactEmail(raw), err)
	}
	return addr, nil
}

// Err reports a cursor-level failure after Next returns false.
func (c *confirmedRows) Err() error { return c.rows.Err() }

// Close releases the cursor.
func (c *confirmedRows) Close() error { return c.rows.Close() }

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
