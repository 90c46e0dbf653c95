package domain

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// maxNameGraphemes is the display-length limit for subscriber names,
// counted in grapheme clusters so multi-byte characters count once.
const maxNameGraphemes = 256

// forbiddenNameCharacters are rejected to keep names safe for HTML and
// header contexts without per-sink escaping.
var forbiddenNameCharacters = []rune{'/', '(', ')', '"', '<', '>', '\\', '{', '}'}

// SubscriberName is a validated display name. Obtain one via ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw name input. It rejects input that is
// empty after trimming, longer than 256 grapheme clusters, or that contains
// a forbidden character.
func ParseSubscriberName(s string) (SubscriberName, error) {
	if strings.TrimSpace(s) == "" {
		return SubscriberName{}, fmt.Errorf("name must not be empty")
	}
	if uniseg.GraphemeClusterCount(s) > maxNameGraphemes {
		return SubscriberName{}, fmt.Errorf("name exceeds %d characters", maxNameGraphemes)
	}
	if strings.ContainsAny(s, string(forbiddenNameCharacters)) {
		return SubscriberName{}, fmt.Errorf("name contains a forbidden character")
	}
	return SubscriberName{value: s}, nil
}

// String returns the validated name.
func (n SubscriberName) String() string { return n.value }
