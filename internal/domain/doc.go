// Package domain defines the core business types for the newsletter service.
//
// Types in this package are validated value objects with no database
// dependencies and no HTTP concerns. They are the shared language between
// handlers, services, and repositories.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - Parse functions are the only way to obtain a SubscriberName or
//     SubscriberEmail; a zero value of either type is not valid input
//   - Constants and enums belong here
package domain
