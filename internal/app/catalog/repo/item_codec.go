package repo

import (
	"fmt"
	"time"

	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Document field names.
const (
	FieldKind            = "kind"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldMediaURLs       = "mediaUrls"
	FieldDataAIHint      = "dataAiHint"
	FieldPrice           = "price"
	FieldOriginalPrice   = "originalPrice"
	FieldIsRecommended   = "isRecommended"
	FieldLikes           = "likes"
	FieldCreatedAt       = "createdAt"
	FieldArticleCategory = "articleCategory"
	FieldCollection      = "collection"
	FieldColors          = "colors"
	FieldSizes           = "sizes"
	FieldInternetClass   = "internetClass"
	FieldRedirectURL     = "redirectUrl"
	FieldSubtitle        = "subtitle"
	FieldImageURL        = "imageUrl"
	FieldShortPreviewURL = "shortPreviewUrl"
	FieldSrc             = "src"
	FieldViews           = "views"
	FieldChannel         = "channel"
	FieldUploadDate      = "uploadDate"
	FieldIsPaid          = "isPaid"
	FieldDuration        = "duration"
)

// isoMillis matches the timestamps browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// buildItemFields returns the full field set of an item. Absent optional
// values are docstore.Undefined; callers sanitize before writing.
func buildItemFields(it domain.Item) docstore.Fields {
	switch v := it.(type) {
	case *domain.Article:
		f := productFields(&v.ProductInfo, domain.KindArticle)
		f[FieldArticleCategory] = v.ArticleCategory
		return f
	case *domain.ShopProduct:
		f := productFields(&v.ProductInfo, domain.KindShop)
		f[FieldCollection] = v.Collection
		f[FieldColors] = v.Colors
		f[FieldSizes] = v.Sizes
		return f
	case *domain.InternetListing:
		f := productFields(&v.ProductInfo, domain.KindInternet)
		f[FieldInternetClass] = v.InternetClass
		f[FieldRedirectURL] = v.RedirectURL
		return f
	case *domain.Slide:
		return docstore.Fields{
			FieldTitle:      v.Title,
			FieldSubtitle:   v.Subtitle,
			FieldImageURL:   v.ImageURL,
			FieldDataAIHint: v.DataAIHint,
		}
	case *domain.Video:
		return docstore.Fields{
			FieldTitle:           v.Title,
			FieldDescription:     v.Description,
			FieldImageURL:        v.ImageURL,
			FieldShortPreviewURL: docstore.Optional(v.ShortPreviewURL),
			FieldDataAIHint:      v.DataAIHint,
			FieldSrc:             v.Src,
			FieldViews:           v.Views,
			FieldChannel:         v.Channel,
			FieldUploadDate:      formatTime(v.UploadDate),
			FieldLikes:           v.Likes,
			FieldIsPaid:          v.IsPaid,
			FieldDuration:        docstore.Optional(v.Duration),
			FieldIsRecommended:   v.IsRecommended,
			FieldCreatedAt:       optionalTime(v.CreatedAt),
		}
	}
	return docstore.Fields{}
}

func productFields(p *domain.ProductInfo, kind domain.Kind) docstore.Fields {
	return docstore.Fields{
		FieldKind:          string(kind),
		FieldTitle:         p.Title,
		FieldDescription:   p.Description,
		FieldMediaURLs:     p.MediaURLs,
		FieldDataAIHint:    p.DataAIHint,
		FieldPrice:         p.Price,
		FieldOriginalPrice: docstore.Optional(p.OriginalPrice),
		FieldIsRecommended: p.IsRecommended,
		FieldLikes:         p.Likes,
		FieldCreatedAt:     optionalTime(p.CreatedAt),
	}
}

// ItemFields returns the sanitized document body of an item.
func ItemFields(it domain.Item) docstore.Fields {
	return docstore.Sanitize(buildItemFields(it))
}

// DecodeItem rebuilds an item from a stored document of a catalog collection.
// Product documents without a kind tag are classified by their fields.
func DecodeItem(d *docstore.Document) (domain.Item, error) {
	f := d.Fields
	switch d.Collection {
	case domain.CollectionProducts:
		return decodeProduct(d.ID, f)
	case domain.CollectionSlides:
		return &domain.Slide{
			ID:         d.ID,
			Title:      f.String(FieldTitle),
			Subtitle:   f.String(FieldSubtitle),
			ImageURL:   f.String(FieldImageURL),
			DataAIHint: f.String(FieldDataAIHint),
		}, nil
	case domain.CollectionVideos:
		v := &domain.Video{
			ID:              d.ID,
			Title:           f.String(FieldTitle),
			Description:     f.String(FieldDescription),
			ImageURL:        f.String(FieldImageURL),
			ShortPreviewURL: f.StringPtr(FieldShortPreviewURL),
			DataAIHint:      f.String(FieldDataAIHint),
			Src:             f.String(FieldSrc),
			Views:           f.Int64(FieldViews),
			Channel:         f.String(FieldChannel),
			Likes:           f.Int64(FieldLikes),
			IsPaid:          f.Bool(FieldIsPaid),
			Duration:        f.Int64Ptr(FieldDuration),
			IsRecommended:   f.Bool(FieldIsRecommended),
			CreatedAt:       timePtr(f, FieldCreatedAt),
		}
		if t, ok := f.Time(FieldUploadDate); ok {
			v.UploadDate = t
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, d.Collection)
}

// InferKind classifies a product document.
func InferKind(f docstore.Fields) (domain.Kind, error) {
	if tag := f.String(FieldKind); tag != "" {
		k, err := domain.ParseKind(tag)
		if err != nil {
			return "", fmt.Errorf("%w: %q", err, tag)
		}
		if !k.IsProduct() {
			return "", fmt.Errorf("%w: %q is not a product kind", domain.ErrUnknownKind, tag)
		}
		return k, nil
	}
	switch {
	case f.Has(FieldCollection):
		return domain.KindShop, nil
	case f.Has(FieldInternetClass):
		return domain.KindInternet, nil
	}
	return domain.KindArticle, nil
}

func decodeProduct(id string, f docstore.Fields) (domain.Item, error) {
	kind, err := InferKind(f)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}
	info := domain.ProductInfo{
		ID:            id,
		Title:         f.String(FieldTitle),
		Description:   f.String(FieldDescription),
		MediaURLs:     f.Strings(FieldMediaURLs),
		DataAIHint:    f.String(FieldDataAIHint),
		Price:         f.Int64(FieldPrice),
		OriginalPrice: f.Int64Ptr(FieldOriginalPrice),
		IsRecommended: f.Bool(FieldIsRecommended),
		Likes:         f.Int64(FieldLikes),
		CreatedAt:     timePtr(f, FieldCreatedAt),
	}
	if info.MediaURLs == nil {
		info.MediaURLs = []string{}
	}

	switch kind {
	case domain.KindShop:
		return &domain.ShopProduct{
			ProductInfo: info,
			Collection:  f.String(FieldCollection),
			Colors:      f.Strings(FieldColors),
			Sizes:       f.Strings(FieldSizes),
		}, nil
	case domain.KindInternet:
		return &domain.InternetListing{
			ProductInfo:   info,
			InternetClass: f.String(FieldInternetClass),
			RedirectURL:   f.String(FieldRedirectURL),
		}, nil
	}
	return &domain.Article{ProductInfo: info, ArticleCategory: f.String(FieldArticleCategory)}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func optionalTime(t *time.Time) any {
	if t == nil {
		return docstore.Undefined
	}
	return formatTime(*t)
}

func timePtr(f docstore.Fields, key string) *time.Time {
	t, ok := f.Time(key)
	if !ok {
		return nil
	}
	return &t
}
