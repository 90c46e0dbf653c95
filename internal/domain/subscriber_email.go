package domain

import (
	"fmt"
	"strings"
)

// SubscriberEmail is a validated email address. Obtain one via
// ParseSubscriberEmail.
//
// Validation is deliberately loose compared to RFC 5321: exactly one '@'
// separating a non-empty local part from a non-empty domain. Anything
// stricter rejects real addresses more often than it catches typos; the
// confirmation email is the actual deliverability check.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates raw email input.
func ParseSubscriberEmail(s string) (SubscriberEmail, error) {
	if s == "" {
		return SubscriberEmail{}, fmt.Errorf("email must not be empty")
	}
	local, dom, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(dom, "@") {
		return SubscriberEmail{}, fmt.Errorf("email must contain exactly one '@'")
	}
	if local == "" {
		return SubscriberEmail{}, fmt.Errorf("email is missing the part before '@'")
	}
	if dom == "" {
		return SubscriberEmail{}, fmt.Errorf("email is missing the domain after '@'")
	}
	return SubscriberEmail{value: s}, nil
}

// String returns the validated address.
func (e SubscriberEmail) String() string { return e.value }
