package domain

// Collections touched by the catalog.
const (
	CollectionProducts = "products"
	CollectionSlides   = "slides"
	CollectionVideos   = "videos"
)

// Kind tags the concrete type of a catalog item.
type Kind string

const (
	KindArticle  Kind = "article"
	KindShop     Kind = "shop"
	KindInternet Kind = "internet"
	KindSlide    Kind = "slide"
	KindVideo    Kind = "video"
)

// Collection returns the collection items of kind k live in.
func (k Kind) Collection() string {
	switch k {
	case KindArticle, KindShop, KindInternet:
		return CollectionProducts
	case KindSlide:
		return CollectionSlides
	case KindVideo:
		return CollectionVideos
	}
	return ""
}

func (k Kind) IsProduct() bool {
	return k.Collection() == CollectionProducts
}

// ParseKind validates a kind tag.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if k.Collection() == "" {
		return "", ErrUnknownKind
	}
	return k, nil
}

// IsCatalogCollection reports whether name is reconciled as a catalog collection.
func IsCatalogCollection(name string) bool {
	switch name {
	case CollectionProducts, CollectionSlides, CollectionVideos:
		return true
	}
	return false
}
