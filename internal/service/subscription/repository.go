package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/newsletter/internal/domain"
)

// Repository defines the data access contract for subscriber persistence.
type Repository interface {
	// Begin opens a transaction. The caller must Commit or Rollback;
	// transactions are never shared across requests.
	Begin(ctx context.Context) (Tx, error)

	// SubscriberIDFromToken resolves a confirmation token to the owning
	// subscriber and the token's issue time. found=false with a nil
	// error means the token simply does not exist.
	SubscriberIDFromToken(ctx context.Context, token string) (id uuid.UUID, issuedAt time.Time, found bool, err error)

	// ConfirmSubscriber sets the subscriber's status to confirmed.
	// Idempotent: confirming an already-confirmed subscriber is not an
	// error and never reverts the status.
	ConfirmSubscriber(ctx context.Context, id uuid.UUID) error
}

// Tx is a transaction-scoped handle for the subscribe flow. Both writes
// happen inside the same transaction or not at all.
type Tx interface {
	// InsertSubscriber inserts a new row with status pending_confirmation
	// and returns its generated id. Duplicate email surfaces as
	// ErrDuplicateEmail.
	InsertSubscriber(ctx context.Context, sub domain.NewSubscriber) (uuid.UUID, error)

	// StoreToken inserts the confirmation token bound to the subscriber.
	// Duplicate token surfaces as ErrDuplicateToken.
	StoreToken(ctx context.Context, subscriberID uuid.UUID, token string) error

	// Commit makes both writes durable. Until it returns nil, nothing
	// in this transaction is visible.
	Commit() error

	// Rollback discards the transaction. Calling it after a successful
	// Commit is a no-op.
	Rollback() error
}
