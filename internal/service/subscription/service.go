package subscription

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/email"
)

// Service orchestrates the subscribe and confirm workflows.
type Service struct {
	repo      Repository
	sender    email.Sender
	templates *email.Templates
	baseURL   string
	tokenTTL  time.Duration
}

// NewService creates a subscription service. baseURL is the public origin
// used to build confirmation links; tokenTTL of zero disables token expiry.
func NewService(repo Repository, sender email.Sender, templates *email.Templates, baseURL string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		sender:    sender,
		templates: templates,
		baseURL:   baseURL,
		tokenTTL:  tokenTTL,
	}
}

// Subscribe validates the request, stores a pending subscriber with a
// fresh confirmation token, and sends the confirmation email. The
// database transaction commits only after the email transport accepts
// the message; any failure leaves no trace in storage.
func (s *Service) Subscribe(ctx context.Context, rawName, rawEmail string) error {
	name, err := domain.ParseSubscriberName(rawName)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	addr, err := domain.ParseSubscriberEmail(rawEmail)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	sub := domain.NewSubscriber{Name: name, Email: addr}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire a database transaction: %w", err)
	}
	// no-op once committed
	defer tx.Rollback()

	subscriberID, err := tx.InsertSubscriber(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to insert new subscriber: %w", err)
	}

	token, err := GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate a confirmation token: %w", err)
	}
	if err := tx.StoreToken(ctx, subscriberID, token); err != nil {
		return fmt.Errorf("failed to store the confirmation token: %w", err)
	}

	msg, err := s.templates.ConfirmationEmail(addr, s.confirmationLink(token))
	if err != nil {
		return fmt.Errorf("failed to render the confirmation email: %w", err)
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send the confirmation email: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit the subscription transaction: %w", err)
	}
	return nil
}

// Confirm redeems a confirmation token, promoting its subscriber to
// confirmed. Redeeming the same token twice is a no-op, not an error.
// Unknown and expired tokens are indistinguishable to the caller.
func (s *Service) Confirm(ctx context.Context, token string) error {
	id, issuedAt, found, err := s.repo.SubscriberIDFromToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to look up the subscription token: %w", err)
	}
	if !found {
		return ErrUnknownToken
	}
	if s.tokenTTL > 0 && time.Since(issuedAt) > s.tokenTTL {
		return ErrUnknownToken
	}

	if err := s.repo.ConfirmSubscriber(ctx, id); err != nil {
		return fmt.Errorf("failed to confirm subscriber: %w", err)
	}
	return nil
}

func (s *Service) confirmationLink(token string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.baseURL, url.QueryEscape(token))
}
