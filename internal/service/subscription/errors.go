package subscription

import "errors"

// Sentinel errors for the subscription service layer.
var (
	// ErrDuplicateEmail is returned when the email already has a
	// subscription row, pending or confirmed.
	ErrDuplicateEmail = errors.New("a subscription for this email already exists")

	// ErrDuplicateToken is returned on a confirmation token collision.
	// With 25 random alphanumeric characters this is vanishingly rare
	// but the database enforces it, so it must be representable.
	ErrDuplicateToken = errors.New("confirmation token already exists")

	// ErrUnknownToken is returned when a token does not resolve to a
	// subscriber. Deliberately covers both never-issued and expired
	// tokens; callers get no hint which one it was.
	ErrUnknownToken = errors.New("subscription token is unknown or expired")
)

// ValidationError reports malformed subscriber input. It is the only
// error from Subscribe that maps to a client fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
