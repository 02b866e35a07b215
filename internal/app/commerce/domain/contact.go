package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactRequest is a visitor's request to be called back.
type ContactRequest struct {
	ID        string
	Name      string
	Firstname string
	Email     string
	Phone     string
	Reason    string
	Status    Status
	CreatedAt time.Time
}

// NewContactRequest validates the form and creates a pending request.
func NewContactRequest(name, firstname, email, phone, reason string, now time.Time) (*ContactRequest, error) {
	c := &ContactRequest{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Firstname: strings.TrimSpace(firstname),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Reason:    strings.TrimSpace(reason),
		Status:    StatusPending,
		CreatedAt: now,
	}
	required := []struct {
		name, value string
	}{
		{"name", c.Name},
		{"firstname", c.Firstname},
		{"email", c.Email},
		{"phone", c.Phone},
		{"reason", c.Reason},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, r.name)
		}
	}
	return c, nil
}
