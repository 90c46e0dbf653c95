// Package newsletter implements issue fan-out to confirmed subscribers.
//
// Delivery is fail-fast: the first send failure aborts the run with the
// failing recipient attached, because a half-delivered issue needs a
// human decision, not silent partial delivery. Rows whose stored email
// no longer validates are the one locally-handled failure: they are
// logged (redacted) and skipped so one corrupt historical row cannot
// block the whole issue.
//
// Fan-out is not idempotent. Retrying a failed publish re-sends to every
// recipient that already got the issue; that is a documented property of
// the design, not an accident.
package newsletter
