package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default titles given to freshly added items.
const (
	DefaultProductTitle = "Nouveau Produit"
	DefaultSlideTitle   = "Nouveau Slide"
	DefaultVideoTitle   = "Nouvelle Vidéo"
)

// Item is one entry of a catalog collection. The concrete types are
// *Article, *ShopProduct, *InternetListing, *Slide and *Video.
type Item interface {
	ItemID() string
	Kind() Kind
	Validate() error
	isItem()
}

// Product is an Item of the products collection.
type Product interface {
	Item
	Info() *ProductInfo
}

// NewID returns a fresh random item identifier.
func NewID() string {
	return uuid.New().String()
}

// ProductInfo holds the fields shared by every product kind. Prices are whole FCFA.
type ProductInfo struct {
	ID            string
	Title         string
	Description   string
	MediaURLs     []string
	DataAIHint    string
	Price         int64
	OriginalPrice *int64
	IsRecommended bool
	Likes         int64
	CreatedAt     *time.Time
}

func (p *ProductInfo) ItemID() string      { return p.ID }
func (p *ProductInfo) Info() *ProductInfo  { return p }
func (p *ProductInfo) isItem()             {}
func (p *ProductInfo) validateInfo() error { return validateCommon(p.ID, p.Price) }

func newProductInfo() ProductInfo {
	return ProductInfo{
		ID:        NewID(),
		Title:     DefaultProductTitle,
		MediaURLs: []string{},
	}
}

// Article is an editorial product filed under an article category.
type Article struct {
	ProductInfo
	ArticleCategory string
}

func NewArticle(articleCategory string) *Article {
	return &Article{ProductInfo: newProductInfo(), ArticleCategory: articleCategory}
}

func (a *Article) Kind() Kind      { return KindArticle }
func (a *Article) Validate() error { return a.validateInfo() }

// ShopProduct is a physical product sold through the cart.
type ShopProduct struct {
	ProductInfo
	Collection string
	Colors     []string
	Sizes      []string
}

func NewShopProduct(collection string) *ShopProduct {
	return &ShopProduct{ProductInfo: newProductInfo(), Collection: collection}
}

func (s *ShopProduct) Kind() Kind      { return KindShop }
func (s *ShopProduct) Validate() error { return s.validateInfo() }

// InternetListing is an offer that redirects to an external site.
type InternetListing struct {
	ProductInfo
	InternetClass string
	RedirectURL   string
}

func NewInternetListing(internetClass string) *InternetListing {
	return &InternetListing{ProductInfo: newProductInfo(), InternetClass: internetClass}
}

func (l *InternetListing) Kind() Kind      { return KindInternet }
func (l *InternetListing) Validate() error { return l.validateInfo() }

// Slide is a home page carousel entry.
type Slide struct {
	ID         string
	Title      string
	Subtitle   string
	ImageURL   string
	DataAIHint string
}

func NewSlide() *Slide {
	return &Slide{ID: NewID(), Title: DefaultSlideTitle}
}

func (s *Slide) ItemID() string  { return s.ID }
func (s *Slide) Kind() Kind      { return KindSlide }
func (s *Slide) Validate() error { return validateCommon(s.ID, 0) }
func (s *Slide) isItem()         {}

// Video is an entry of the TV section. Duration is in minutes.
type Video struct {
	ID              string
	Title           string
	Description     string
	ImageURL        string
	ShortPreviewURL *string
	DataAIHint      string
	Src             string
	Views           int64
	Channel         string
	UploadDate      time.Time
	Likes           int64
	IsPaid          bool
	Duration        *int64
	IsRecommended   bool
	CreatedAt       *time.Time
}

func NewVideo(channel string, now time.Time) *Video {
	zero := int64(0)
	return &Video{
		ID:         NewID(),
		Title:      DefaultVideoTitle,
		Channel:    channel,
		UploadDate: now.UTC(),
		Duration:   &zero,
	}
}

func (v *Video) ItemID() string  { return v.ID }
func (v *Video) Kind() Kind      { return KindVideo }
func (v *Video) Validate() error { return validateCommon(v.ID, 0) }
func (v *Video) isItem()         {}

// NewItem builds a fresh item of kind k the way the back office adds one.
// category is the article category, shop collection, internet class or TV
// channel, depending on k; slides ignore it.
func NewItem(k Kind, category string, now time.Time) (Item, error) {
	switch k {
	case KindArticle:
		return NewArticle(category), nil
	case KindShop:
		return NewShopProduct(category), nil
	case KindInternet:
		return NewInternetListing(category), nil
	case KindSlide:
		return NewSlide(), nil
	case KindVideo:
		return NewVideo(category, now), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

func validateCommon(id string, price int64) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyItemID
	}
	if price < 0 {
		return ErrNegativePrice
	}
	return nil
}
