package newsletter

import (
	"context"

	"github.com/ignite/newsletter/internal/domain"
)

// SubscriberSource streams the confirmed audience for an issue.
type SubscriberSource interface {
	// ConfirmedSubscribers opens a lazy cursor over subscribers with
	// status confirmed. The caller must Close it.
	ConfirmedSubscribers(ctx context.Context) (SubscriberIterator, error)
}

// SubscriberIterator is a single-pass, non-restartable cursor. Each row
// yields either a usable address or a per-row error (the stored email
// failed re-validation); a row error does not end the iteration.
type SubscriberIterator interface {
	// Next advances to the next row, returning false when exhausted.
	Next() bool

	// Subscriber returns the current row's validated address, or the
	// reason this row is unusable.
	Subscriber() (domain.SubscriberEmail, error)

	// Err reports a cursor-level failure after Next returns false.
	Err() error

	Close() error
}
