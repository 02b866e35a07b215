package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Collection and document IDs of the configuration documents.
const (
	CollectionConfig = "config"

	DocCategories        = "categories"
	DocPayment           = "payment"
	DocSubscriptionPlans = "subscriptionPlans"
	DocAbout             = "about"
)

// DefaultCategoryLabel is the label of a freshly added category.
const DefaultCategoryLabel = "Nouvelle catégorie"

var (
	// ErrUnknownPlan indicates a plan id other than 24h, 1w or 1m.
	ErrUnknownPlan = errors.New("unknown subscription plan")

	// ErrNegativePlanPrice indicates a plan priced below zero.
	ErrNegativePlanPrice = errors.New("plan price cannot be negative")

	// ErrTooManyPaymentMethods indicates more payment methods than the storefront shows.
	ErrTooManyPaymentMethods = errors.New("at most 3 payment methods are supported")

	// ErrUnknownCategoryList indicates a category list name other than the four documented ones.
	ErrUnknownCategoryList = errors.New("unknown category list")

	// ErrEmptySettings indicates a save request without any document.
	ErrEmptySettings = errors.New("nothing to save")
)

// MaxPaymentMethods bounds the payment methods shown at checkout.
const MaxPaymentMethods = 3

// Category is one selectable tag of a category list.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// NewCategory returns a category with a short random ID and the default label.
func NewCategory() Category {
	return Category{ID: NewCategoryID(), Label: DefaultCategoryLabel}
}

// NewCategoryID returns the first 8 characters of a random UUID.
func NewCategoryID() string {
	return uuid.New().String()[:8]
}

// Categories are the tag lists items refer to.
type Categories struct {
	ArticleCategories  []Category `yaml:"articleCategories" json:"articleCategories"`
	ProductCollections []Category `yaml:"productCollections" json:"productCollections"`
	InternetClasses    []Category `yaml:"internetClasses" json:"internetClasses"`
	TVChannels         []Category `yaml:"tvChannels" json:"tvChannels"`
}

// Names of the category lists, as stored in the categories document.
const (
	ListArticleCategories  = "articleCategories"
	ListProductCollections = "productCollections"
	ListInternetClasses    = "internetClasses"
	ListTVChannels         = "tvChannels"
)

// List returns the category list called name.
func (c Categories) List(name string) ([]Category, error) {
	switch name {
	case ListArticleCategories:
		return c.ArticleCategories, nil
	case ListProductCollections:
		return c.ProductCollections, nil
	case ListInternetClasses:
		return c.InternetClasses, nil
	case ListTVChannels:
		return c.TVChannels, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategoryList, name)
}

// Clone returns a deep copy.
func (c Categories) Clone() Categories {
	return Categories{
		ArticleCategories:  append([]Category{}, c.ArticleCategories...),
		ProductCollections: append([]Category{}, c.ProductCollections...),
		InternetClasses:    append([]Category{}, c.InternetClasses...),
		TVChannels:         append([]Category{}, c.TVChannels...),
	}
}

// FirstID returns the ID of the first category of list, or "".
func FirstID(list []Category) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}

type PaymentMethod struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Details string `yaml:"details" json:"details"`
	Color   string `yaml:"color" json:"color"`
}

type PaymentDetails struct {
	Methods []PaymentMethod `yaml:"methods" json:"methods"`
}

func (p PaymentDetails) Validate() error {
	if len(p.Methods) > MaxPaymentMethods {
		return ErrTooManyPaymentMethods
	}
	return nil
}

// PlanID identifies a subscription plan.
type PlanID string

const (
	Plan24h PlanID = "24h"
	Plan1w  PlanID = "1w"
	Plan1m  PlanID = "1m"
)

// PlanIDs lists the plans in display order.
var PlanIDs = []PlanID{Plan24h, Plan1w, Plan1m}

func ParsePlanID(s string) (PlanID, error) {
	for _, id := range PlanIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", ErrUnknownPlan
}

// Plan is a subscription offer priced in FCFA.
type Plan struct {
	ID       PlanID   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Price    int64    `yaml:"price" json:"price"`
	Features []string `yaml:"features" json:"features"`
}

// Plans maps every plan ID to its offer.
type Plans map[PlanID]Plan

func (p Plans) Validate() error {
	for id, plan := range p {
		if _, err := ParsePlanID(string(id)); err != nil {
			return err
		}
		if plan.Price < 0 {
			return ErrNegativePlanPrice
		}
	}
	return nil
}

type FAQ struct {
	ID       string `yaml:"id" json:"id"`
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// About is the content of the about page.
type About struct {
	History    string `yaml:"history" json:"history"`
	HowItWorks string `yaml:"howItWorks" json:"howItWorks"`
	FAQs       []FAQ  `yaml:"faqs" json:"faqs"`
}
