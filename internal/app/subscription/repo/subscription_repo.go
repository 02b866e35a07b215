package repo

import (
	"fmt"
	"time"

	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

const (
	FieldUserID        = "userId"
	FieldUserEmail     = "userEmail"
	FieldPlan          = "plan"
	FieldAmount        = "amount"
	FieldTransactionID = "transactionId"
	FieldStatus        = "status"
	FieldCreatedAt     = "createdAt"
	FieldStartDate     = "startDate"
	FieldExpiryDate    = "expiryDate"

	// FieldSubscriptionExpiry lives on users/{uid}.
	FieldSubscriptionExpiry = "subscriptionExpiry"
)

// SubscriptionRepo builds the writes of subscriptions and user expiries.
// It returns ops but never applies them.
type SubscriptionRepo struct{}

func NewSubscriptionRepo() *SubscriptionRepo {
	return &SubscriptionRepo{}
}

func (r *SubscriptionRepo) CreateMut(s *domain.Subscription) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpSet,
		Collection: domain.CollectionSubscriptions,
		ID:         s.ID,
		Fields:     Encode(s),
	}
}

// ActivateMut records a confirmed subscription; the document must exist.
func (r *SubscriptionRepo) ActivateMut(s *domain.Subscription) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpUpdate,
		Collection: domain.CollectionSubscriptions,
		ID:         s.ID,
		Fields: docstore.Sanitize(docstore.Fields{
			FieldStatus:     string(s.Status),
			FieldStartDate:  timeValue(s.StartDate),
			FieldExpiryDate: timeValue(s.ExpiryDate),
		}),
	}
}

func (r *SubscriptionRepo) StatusMut(id string, status domain.Status) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpUpdate,
		Collection: domain.CollectionSubscriptions,
		ID:         id,
		Fields:     docstore.Fields{FieldStatus: string(status)},
	}
}

func (r *SubscriptionRepo) DeleteMut(id string) docstore.Op {
	return docstore.Op{Kind: docstore.OpDelete, Collection: domain.CollectionSubscriptions, ID: id}
}

// GrantMut moves the user's expiry forward to until, never backward.
func (r *SubscriptionRepo) GrantMut(userID string, until time.Time) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpExtend,
		Collection: domain.CollectionUsers,
		ID:         userID,
		Field:      FieldSubscriptionExpiry,
		Value:      until.UTC(),
	}
}

// SetExpiryMut overwrites the user's expiry, creating the user document when missing.
func (r *SubscriptionRepo) SetExpiryMut(userID string, expiry time.Time) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpMerge,
		Collection: domain.CollectionUsers,
		ID:         userID,
		Fields:     docstore.Fields{FieldSubscriptionExpiry: formatTime(expiry)},
	}
}

// Encode converts a subscription into its document body.
func Encode(s *domain.Subscription) docstore.Fields {
	return docstore.Sanitize(docstore.Fields{
		FieldUserID:        s.UserID,
		FieldUserEmail:     s.UserEmail,
		FieldPlan:          string(s.Plan),
		FieldAmount:        s.Amount,
		FieldTransactionID: s.TransactionID,
		FieldStatus:        string(s.Status),
		FieldCreatedAt:     formatTime(s.CreatedAt),
		FieldStartDate:     timeValue(s.StartDate),
		FieldExpiryDate:    timeValue(s.ExpiryDate),
	})
}

// Decode rebuilds a subscription from a stored document.
func Decode(doc *docstore.Document) (*domain.Subscription, error) {
	f := doc.Fields
	plan, err := settings.ParsePlanID(f.String(FieldPlan))
	if err != nil {
		return nil, fmt.Errorf("subscription %s: %w", doc.ID, err)
	}
	s := &domain.Subscription{
		ID:            doc.ID,
		UserID:        f.String(FieldUserID),
		UserEmail:     f.String(FieldUserEmail),
		Plan:          plan,
		Amount:        f.Int64(FieldAmount),
		TransactionID: f.String(FieldTransactionID),
		Status:        domain.Status(f.String(FieldStatus)),
	}
	if s.Status == "" {
		s.Status = domain.StatusPending
	}
	if t, ok := f.Time(FieldCreatedAt); ok {
		s.CreatedAt = t
	}
	if t, ok := f.Time(FieldStartDate); ok {
		s.StartDate = &t
	}
	if t, ok := f.Time(FieldExpiryDate); ok {
		s.ExpiryDate = &t
	}
	return s, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func timeValue(t *time.Time) any {
	if t == nil {
		return docstore.Undefined
	}
	return formatTime(*t)
}
