package repo

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// SettingsRepo builds merge writes of the configuration documents.
// It returns ops but never applies them.
type SettingsRepo struct{}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{}
}

func (r *SettingsRepo) CategoriesMut(c domain.Categories) (docstore.Op, error) {
	return mergeOp(domain.DocCategories, c.Clone())
}

func (r *SettingsRepo) PaymentMut(p domain.PaymentDetails) (docstore.Op, error) {
	if p.Methods == nil {
		p.Methods = []domain.PaymentMethod{}
	}
	return mergeOp(domain.DocPayment, p)
}

func (r *SettingsRepo) PlansMut(p domain.Plans) (docstore.Op, error) {
	return mergeOp(domain.DocSubscriptionPlans, p)
}

func (r *SettingsRepo) AboutMut(a domain.About) (docstore.Op, error) {
	if a.FAQs == nil {
		a.FAQs = []domain.FAQ{}
	}
	return mergeOp(domain.DocAbout, a)
}

func mergeOp(docID string, v any) (docstore.Op, error) {
	f, err := ToFields(v)
	if err != nil {
		return docstore.Op{}, fmt.Errorf("encode %s: %w", docID, err)
	}
	return docstore.Op{Kind: docstore.OpMerge, Collection: domain.CollectionConfig, ID: docID, Fields: f}, nil
}

// ToFields encodes a settings value into a document body.
func ToFields(v any) (docstore.Fields, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := docstore.Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromFields decodes a document body into a settings value.
func FromFields(f docstore.Fields, v any) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
