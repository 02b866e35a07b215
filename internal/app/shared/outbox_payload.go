package shared

import (
	"encoding/json"
	"fmt"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	subscription "github.com/murkotick/storefront-service/internal/app/subscription/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
func MarshalDomainEventPayload(ev DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *catalog.CollectionReconciledEvent:
		payload = map[string]interface{}{
			"collection": e.Collection,
			"upserted":   e.Upserted,
			"deleted":    e.Deleted,
			"revision":   e.Revision,
		}
	case *settings.SettingsSavedEvent:
		payload = map[string]interface{}{
			"documents": e.Documents,
		}
	case *commerce.OrderSubmittedEvent:
		payload = map[string]interface{}{
			"order_id":     e.OrderID,
			"user_id":      e.UserID,
			"total_amount": e.TotalAmount,
			"items":        e.Items,
		}
	case *commerce.ContactSubmittedEvent:
		payload = map[string]interface{}{
			"request_id": e.RequestID,
			"email":      e.Email,
		}
	case *commerce.StatusChangedEvent:
		payload = map[string]interface{}{
			"record": string(e.Record),
			"id":     e.RecordID,
			"status": string(e.Status),
		}
	case *subscription.SubscriptionRequestedEvent:
		payload = map[string]interface{}{
			"subscription_id": e.SubscriptionID,
			"user_id":         e.UserID,
			"plan":            e.Plan,
			"amount":          e.Amount,
			"grace_until":     e.GraceUntil,
		}
	case *subscription.SubscriptionConfirmedEvent:
		payload = map[string]interface{}{
			"subscription_id": e.SubscriptionID,
			"user_id":         e.UserID,
			"expiry_date":     e.ExpiryDate,
		}
	case *subscription.SubscriptionRevokedEvent:
		payload = map[string]interface{}{
			"subscription_id": e.SubscriptionID,
			"user_id":         e.UserID,
		}
	case *subscription.SubscriptionExpiredEvent:
		payload = map[string]interface{}{
			"subscription_id": e.SubscriptionID,
			"user_id":         e.UserID,
		}
	case *feature.FeedbackAddedEvent:
		payload = map[string]interface{}{
			"feature_id":  e.FeatureID,
			"feedback_id": e.FeedbackID,
			"author_id":   e.AuthorID,
		}
	case *feature.FeedbackRepliedEvent:
		payload = map[string]interface{}{
			"feature_id":  e.FeatureID,
			"feedback_id": e.FeedbackID,
		}
	}

	if payload != nil {
		payload["occurred_at"] = ev.OccurredAt()
		b, err := json.Marshal(payload)
		return string(b), err
	}

	// Fallback: try to marshal the event directly.
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
