package logger

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// fields whose values are treated as email addresses outright
var emailFieldKeys = []string{"email", "recipient", "to", "subscriber"}

func redactValue(key, val string) string {
	k := strings.ToLower(key)
	for _, f := range emailFieldKeys {
		if strings.Contains(k, f) {
			return RedactEmail(val)
		}
	}
	// catch emails embedded in generic fields, e.g. wrapped error text
	return emailPattern.ReplaceAllStringFunc(val, RedactEmail)
}

// RedactEmail masks an email address for safe logging.
// "ursula_le_guin@gmail.com" becomes "ur***@gmail.com"; local parts of
// two characters or fewer are masked entirely.
func RedactEmail(email string) string {
	local, dom, ok := strings.Cut(email, "@")
	if !ok {
		return "***@***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + dom
	}
	return "***@" + dom
}
