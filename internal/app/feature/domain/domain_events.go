package domain

import "time"

// FeedbackAddedEvent is raised when a user comments on a feature.
type FeedbackAddedEvent struct {
	FeatureID  string
	FeedbackID string
	AuthorID   string
	AddedAt    time.Time
}

func (e *FeedbackAddedEvent) EventType() string     { return "feature.feedback_added" }
func (e *FeedbackAddedEvent) AggregateID() string   { return e.FeatureID }
func (e *FeedbackAddedEvent) OccurredAt() time.Time { return e.AddedAt }

// FeedbackRepliedEvent is raised when an admin answers a feedback entry.
type FeedbackRepliedEvent struct {
	FeatureID  string
	FeedbackID string
	RepliedAt  time.Time
}

func (e *FeedbackRepliedEvent) EventType() string     { return "feature.feedback_replied" }
func (e *FeedbackRepliedEvent) AggregateID() string   { return e.FeatureID }
func (e *FeedbackRepliedEvent) OccurredAt() time.Time { return e.RepliedAt }
