package domain

import "time"

// SubscriptionRequestedEvent is raised when a user asks for a plan.
type SubscriptionRequestedEvent struct {
	SubscriptionID string
	UserID         string
	Plan           string
	Amount         int64
	GraceUntil     time.Time
	RequestedAt    time.Time
}

func (e *SubscriptionRequestedEvent) EventType() string     { return "subscription.requested" }
func (e *SubscriptionRequestedEvent) AggregateID() string   { return e.SubscriptionID }
func (e *SubscriptionRequestedEvent) OccurredAt() time.Time { return e.RequestedAt }

// SubscriptionConfirmedEvent is raised when an admin confirms the payment.
type SubscriptionConfirmedEvent struct {
	SubscriptionID string
	UserID         string
	ExpiryDate     time.Time
	ConfirmedAt    time.Time
}

func (e *SubscriptionConfirmedEvent) EventType() string     { return "subscription.confirmed" }
func (e *SubscriptionConfirmedEvent) AggregateID() string   { return e.SubscriptionID }
func (e *SubscriptionConfirmedEvent) OccurredAt() time.Time { return e.ConfirmedAt }

// SubscriptionRevokedEvent is raised when an admin revokes access.
type SubscriptionRevokedEvent struct {
	SubscriptionID string
	UserID         string
	RevokedAt      time.Time
}

func (e *SubscriptionRevokedEvent) EventType() string     { return "subscription.revoked" }
func (e *SubscriptionRevokedEvent) AggregateID() string   { return e.SubscriptionID }
func (e *SubscriptionRevokedEvent) OccurredAt() time.Time { return e.RevokedAt }

// SubscriptionExpiredEvent is raised when the sweep marks a lapsed subscription.
type SubscriptionExpiredEvent struct {
	SubscriptionID string
	UserID         string
	ExpiredAt      time.Time
}

func (e *SubscriptionExpiredEvent) EventType() string     { return "subscription.expired" }
func (e *SubscriptionExpiredEvent) AggregateID() string   { return e.SubscriptionID }
func (e *SubscriptionExpiredEvent) OccurredAt() time.Time { return e.ExpiredAt }
