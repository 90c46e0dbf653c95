package email

import (
	"fmt"

	"github.com/osteele/liquid"

	"github.com/ignite/newsletter/internal/domain"
)

const (
	confirmationSubject = "Welcome"

	confirmationHTML = `welcome to our newsletter! <br /> Click <a href="{{ confirmation_link }}">here</a> to confirm your subscription.`

	confirmationText = `welcome to our newsletter!
Visit {{ confirmation_link }} to confirm your subscription.`
)

// Templates renders the transactional emails the service sends. Bodies are
// Liquid templates so copy changes never touch Go string formatting.
type Templates struct {
	engine *liquid.Engine
}

// NewTemplates creates the template renderer.
func NewTemplates() *Templates {
	return &Templates{engine: liquid.NewEngine()}
}

// ConfirmationEmail composes the double-opt-in email carrying the
// confirmation link for a new pending subscriber.
func (t *Templates) ConfirmationEmail(to domain.SubscriberEmail, confirmationLink string) (Email, error) {
	bindings := map[string]any{"confirmation_link": confirmationLink}

	html, err := t.engine.ParseAndRenderString(confirmationHTML, bindings)
	if err != nil {
		return Email{}, fmt.Errorf("rendering confirmation html: %w", err)
	}
	text, err := t.engine.ParseAndRenderString(confirmationText, bindings)
	if err != nil {
		return Email{}, fmt.Errorf("rendering confirmation text: %w", err)
	}

	return Email{
		To:       to,
		Subject:  confirmationSubject,
		HTMLBody: html,
		TextBody: text,
	}, nil
}
