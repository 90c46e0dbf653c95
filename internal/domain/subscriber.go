package domain

import "time"

// SubscriberStatus enumerates the states a subscriber can be in.
// The status moves once, from pending to confirmed, and never reverts.
type SubscriberStatus string

const (
	SubscriberPending   SubscriberStatus = "pending_confirmation"
	SubscriberConfirmed SubscriberStatus = "confirmed"
)

// Subscriber is a single recipient on the newsletter list.
type Subscriber struct {
	ID           string           `json:"id" db:"id"`
	Email        string           `json:"email" db:"email"`
	Name         string           `json:"name" db:"name"`
	Status       SubscriberStatus `json:"status" db:"status"`
	SubscribedAt time.Time        `json:"subscribed_at" db:"subscribed_at"`
}

// NewSubscriber carries validated input for a subscription request.
// Both fields have already passed their Parse functions.
type NewSubscriber struct {
	Name  SubscriberName
	Email SubscriberEmail
}
