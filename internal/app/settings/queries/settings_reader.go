package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/settings/repo"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// SettingsReader serves the configuration documents, falling back to the
// embedded defaults for documents that were never saved.
type SettingsReader struct {
	reader   docstore.Reader
	defaults *domain.Defaults
}

func NewSettingsReader(reader docstore.Reader, defaults *domain.Defaults) *SettingsReader {
	if defaults == nil {
		defaults = domain.MustDefaults()
	}
	return &SettingsReader{reader: reader, defaults: defaults}
}

func (r *SettingsReader) Categories(ctx context.Context) (domain.Categories, error) {
	var c domain.Categories
	found, err := r.load(ctx, domain.DocCategories, &c)
	if err != nil {
		return domain.Categories{}, err
	}
	if !found {
		return r.defaults.Categories.Clone(), nil
	}
	return c.Clone(), nil
}

// Payment falls back to the defaults when no method is configured.
func (r *SettingsReader) Payment(ctx context.Context) (domain.PaymentDetails, error) {
	var p domain.PaymentDetails
	found, err := r.load(ctx, domain.DocPayment, &p)
	if err != nil {
		return domain.PaymentDetails{}, err
	}
	if !found || len(p.Methods) == 0 {
		return domain.PaymentDetails{Methods: append([]domain.PaymentMethod{}, r.defaults.Payment.Methods...)}, nil
	}
	return p, nil
}

// Plans returns every plan; plans missing from the stored document keep
// their default offer.
func (r *SettingsReader) Plans(ctx context.Context) (domain.Plans, error) {
	stored := domain.Plans{}
	if _, err := r.load(ctx, domain.DocSubscriptionPlans, &stored); err != nil {
		return nil, err
	}
	out := make(domain.Plans, len(domain.PlanIDs))
	for _, id := range domain.PlanIDs {
		if p, ok := stored[id]; ok {
			p.ID = id
			out[id] = p
			continue
		}
		out[id] = r.defaults.SubscriptionPlans[id]
	}
	return out, nil
}

func (r *SettingsReader) About(ctx context.Context) (domain.About, error) {
	var a domain.About
	found, err := r.load(ctx, domain.DocAbout, &a)
	if err != nil {
		return domain.About{}, err
	}
	if !found {
		d := r.defaults.About
		d.FAQs = append([]domain.FAQ{}, d.FAQs...)
		return d, nil
	}
	if a.FAQs == nil {
		a.FAQs = []domain.FAQ{}
	}
	return a, nil
}

func (r *SettingsReader) load(ctx context.Context, docID string, v any) (bool, error) {
	d, err := r.reader.Get(ctx, domain.CollectionConfig, docID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read config/%s: %w", docID, err)
	}
	if err := repo.FromFields(d.Fields, v); err != nil {
		return false, fmt.Errorf("decode config/%s: %w", docID, err)
	}
	return true, nil
}
