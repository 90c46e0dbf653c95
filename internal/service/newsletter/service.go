package newsletter

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter/internal/email"
	"github.com/ignite/newsletter/internal/pkg/errchain"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Issue is one newsletter edition: a title used as the subject line and
// the content in both renderings. Content is sent as-is.
type Issue struct {
	Title string
	HTML  string
	Text  string
}

// Service fans an issue out to every confirmed subscriber.
type Service struct {
	source SubscriberSource
	sender email.Sender
}

// NewService creates a newsletter service.
func NewService(source SubscriberSource, sender email.Sender) *Service {
	return &Service{source: source, sender: sender}
}

// Publish sends the issue to each confirmed subscriber, one email per
// recipient, in cursor order. It returns the number of emails delivered.
// A send failure aborts the run with a DispatchError; invalid stored
// rows are logged and skipped. Zero confirmed subscribers is a success.
func (s *Service) Publish(ctx context.Context, issue Issue) (int, error) {
	it, err := s.source.ConfirmedSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list confirmed subscribers: %w", err)
	}
	defer it.Close()

	sent := 0
	for it.Next() {
		addr, rowErr := it.Subscriber()
		if rowErr != nil {
			logger.Warn("skipping subscriber with invalid stored email",
				"cause", errchain.Format(rowErr))
			continue
		}

		msg := email.Email{
			To:       addr,
			Subject:  issue.Title,
			HTMLBody: issue.HTML,
			TextBody: issue.Text,
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			return sent, &DispatchError{Recipient: addr.String(), Err: err}
		}
		sent++
	}
	if err := it.Err(); err != nil {
		return sent, fmt.Errorf("failed while iterating confirmed subscribers: %w", err)
	}
	return sent, nil
}
