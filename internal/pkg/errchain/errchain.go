// Package errchain formats wrapped errors as an explicit cause chain.
//
// Handlers log server-side failures with the full chain so that a single
// log line shows the operation that failed and every underlying cause,
// innermost last:
//
//	failed to commit SQL transaction
//	caused by: pq: connection refused
package errchain

import (
	"errors"
	"strings"
)

// Format renders err followed by one "caused by:" line per wrapped cause.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(err.Error())
	prev := err.Error()
	for {
		err = errors.Unwrap(err)
		if err == nil {
			return b.String()
		}
		// fmt.Errorf("%s: %w", ...) repeats the cause inside the outer
		// message; only print a link when it adds information.
		if err.Error() == prev {
			continue
		}
		prev = err.Error()
		b.WriteString("\ncaused by: ")
		b.WriteString(err.Error())
	}
}
