package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
)

const (
	CollectionSubscriptions = "subscriptions"
	CollectionUsers         = "users"
)

// GracePeriod is the temporary access granted while a payment is checked.
const GracePeriod = 5 * time.Hour

// Status is the lifecycle state of a subscription.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Subscription is a user's paid access request.
type Subscription struct {
	ID            string
	UserID        string
	UserEmail     string
	Plan          settings.PlanID
	Amount        int64
	TransactionID string
	Status        Status
	CreatedAt     time.Time
	StartDate     *time.Time
	ExpiryDate    *time.Time
}

// NewSubscription creates a pending request priced at the plan's current price.
func NewSubscription(userID, userEmail string, plan settings.Plan, transactionID string, now time.Time) (*Subscription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAnonymous
	}
	if strings.TrimSpace(transactionID) == "" {
		return nil, ErrEmptyTransactionID
	}
	if _, err := settings.ParsePlanID(string(plan.ID)); err != nil {
		return nil, err
	}
	return &Subscription{
		ID:            uuid.New().String(),
		UserID:        userID,
		UserEmail:     userEmail,
		Plan:          plan.ID,
		Amount:        plan.Price,
		TransactionID: strings.TrimSpace(transactionID),
		Status:        StatusPending,
		CreatedAt:     now,
	}, nil
}

// GraceExpiry is the temporary access end for a request made at now.
func GraceExpiry(now time.Time) time.Time {
	return now.Add(GracePeriod)
}

// ExpiryFor returns when access bought with plan at now ends.
func ExpiryFor(plan settings.PlanID, now time.Time) (time.Time, error) {
	switch plan {
	case settings.Plan24h:
		return now.AddDate(0, 0, 1), nil
	case settings.Plan1w:
		return now.AddDate(0, 0, 7), nil
	case settings.Plan1m:
		return now.AddDate(0, 1, 0), nil
	}
	return time.Time{}, settings.ErrUnknownPlan
}

// Confirm activates the subscription from now.
func (s *Subscription) Confirm(now time.Time) error {
	if s.Status == StatusActive {
		return ErrAlreadyActive
	}
	expiry, err := ExpiryFor(s.Plan, now)
	if err != nil {
		return err
	}
	start := now
	s.Status = StatusActive
	s.StartDate = &start
	s.ExpiryDate = &expiry
	return nil
}

// IsLapsed reports whether an active subscription passed its expiry.
func (s *Subscription) IsLapsed(now time.Time) bool {
	return s.Status == StatusActive && s.ExpiryDate != nil && !s.ExpiryDate.After(now)
}

// RevokedExpiry is the expiry written to a user whose access is revoked.
var RevokedExpiry = time.Unix(0, 0).UTC()
