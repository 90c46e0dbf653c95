// Package subscription implements the subscriber lifecycle: a subscription
// request creates a pending subscriber and a confirmation token in one
// transaction, and redeeming the token promotes the subscriber to confirmed.
//
// The commit ordering is the whole point of this package. The transaction
// is committed only after the confirmation email has been accepted by the
// transport, so a subscriber who never received a confirmation link can
// never exist in the database.
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// net/http or database/sql directly.
package subscription
