package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CollectionFeatures = "features"
	// CollectionReplies holds admin replies keyed by feedback ID.
	CollectionReplies = "featureReplies"
)

var (
	ErrFeatureNotFound  = errors.New("feature not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrEmptyText        = errors.New("text cannot be empty")
	ErrAnonymous        = errors.New("a signed-in user is required to give feedback")
)

// Feature is an announced storefront feature open to feedback.
type Feature struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	Feedback    []Feedback
}

type Feedback struct {
	ID          string
	AuthorID    string
	AuthorEmail string
	Text        string
	CreatedAt   time.Time
	AdminReply  *Reply
}

type Reply struct {
	Text      string
	CreatedAt time.Time
}

func NewFeedback(authorID, authorEmail, text string, now time.Time) (Feedback, error) {
	if strings.TrimSpace(authorID) == "" {
		return Feedback{}, ErrAnonymous
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Feedback{}, ErrEmptyText
	}
	return Feedback{
		ID:          uuid.New().String(),
		AuthorID:    authorID,
		AuthorEmail: authorEmail,
		Text:        text,
		CreatedAt:   now,
	}, nil
}

func NewReply(text string, now time.Time) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyText
	}
	return Reply{Text: text, CreatedAt: now}, nil
}

// FindFeedback returns the entry with the given ID.
func (f *Feature) FindFeedback(id string) (*Feedback, bool) {
	for i := range f.Feedback {
		if f.Feedback[i].ID == id {
			return &f.Feedback[i], true
		}
	}
	return nil, false
}
