package domain

import "time"

// OrderSubmittedEvent is raised when a customer places an order.
type OrderSubmittedEvent struct {
	OrderID     string
	UserID      string
	TotalAmount int64
	Items       int
	SubmittedAt time.Time
}

func (e *OrderSubmittedEvent) EventType() string     { return "order.submitted" }
func (e *OrderSubmittedEvent) AggregateID() string   { return e.OrderID }
func (e *OrderSubmittedEvent) OccurredAt() time.Time { return e.SubmittedAt }

// ContactSubmittedEvent is raised when a visitor sends the contact form.
type ContactSubmittedEvent struct {
	RequestID   string
	Email       string
	SubmittedAt time.Time
}

func (e *ContactSubmittedEvent) EventType() string     { return "contact.submitted" }
func (e *ContactSubmittedEvent) AggregateID() string   { return e.RequestID }
func (e *ContactSubmittedEvent) OccurredAt() time.Time { return e.SubmittedAt }

// StatusChangedEvent is raised when the back office moves a record to a new status.
type StatusChangedEvent struct {
	Record    Record
	RecordID  string
	Status    Status
	ChangedAt time.Time
}

func (e *StatusChangedEvent) EventType() string     { return string(e.Record) + ".status_changed" }
func (e *StatusChangedEvent) AggregateID() string   { return e.RecordID }
func (e *StatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
