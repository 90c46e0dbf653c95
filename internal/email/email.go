// Package email provides the outbound email transport used by the
// confirmation and newsletter flows.
//
// The contract is intentionally narrow: send one email, report
// success or failure. Callers own retry policy; implementations here
// make exactly one delivery attempt per Send so that newsletter
// fan-out never double-sends.
package email

import (
	"context"

	"github.com/ignite/newsletter/internal/domain"
)

// Email is a single fully-composed outbound message. The sender address
// is transport configuration, not message data.
type Email struct {
	To       domain.SubscriberEmail
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers one email per call. A nil return means the transport
// accepted the message; any non-2xx or connection-level failure is an error.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}
