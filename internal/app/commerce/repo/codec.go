package repo

import (
	"time"

	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

const (
	FieldUserID        = "userId"
	FieldCustomerName  = "customerName"
	FieldCustomerEmail = "customerEmail"
	FieldCustomerPhone = "customerPhone"
	FieldTransactionID = "transactionId"
	FieldCustomerNotes = "customerNotes"
	FieldItems         = "items"
	FieldDeliveryFee   = "deliveryFee"
	FieldTotalAmount   = "totalAmount"
	FieldStatus        = "status"
	FieldCreatedAt     = "createdAt"

	FieldName      = "name"
	FieldFirstname = "firstname"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldReason    = "reason"
)

func optionalString(s string) any {
	if s == "" {
		return docstore.Undefined
	}
	return s
}

func EncodeOrder(o *domain.Order) docstore.Fields {
	items := make([]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, docstore.Sanitize(docstore.Fields{
			"id":            it.ID,
			"title":         it.Title,
			"price":         it.Price,
			"collection":    optionalString(it.Collection),
			"internetClass": optionalString(it.InternetClass),
			"selectedColor": optionalString(it.SelectedColor),
			"selectedSize":  optionalString(it.SelectedSize),
		}))
	}
	return docstore.Sanitize(docstore.Fields{
		FieldUserID:        o.UserID,
		FieldCustomerName:  o.Customer.Name,
		FieldCustomerEmail: o.Customer.Email,
		FieldCustomerPhone: o.Customer.Phone,
		FieldTransactionID: o.Customer.TransactionID,
		FieldCustomerNotes: optionalString(o.Customer.Notes),
		FieldItems:         items,
		FieldDeliveryFee:   o.DeliveryFee,
		FieldTotalAmount:   o.TotalAmount,
		FieldStatus:        string(o.Status),
		FieldCreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func DecodeOrder(doc *docstore.Document) *domain.Order {
	f := doc.Fields
	o := &domain.Order{
		ID:     doc.ID,
		UserID: f.String(FieldUserID),
		Customer: domain.Customer{
			Name:          f.String(FieldCustomerName),
			Email:         f.String(FieldCustomerEmail),
			Phone:         f.String(FieldCustomerPhone),
			TransactionID: f.String(FieldTransactionID),
			Notes:         f.String(FieldCustomerNotes),
		},
		DeliveryFee: f.Int64(FieldDeliveryFee),
		TotalAmount: f.Int64(FieldTotalAmount),
		Status:      decodeStatus(f),
		CreatedAt:   createdAt(f),
	}
	for _, m := range f.Maps(FieldItems) {
		o.Items = append(o.Items, domain.OrderItem{
			ID:            m.String("id"),
			Title:         m.String("title"),
			Price:         m.Int64("price"),
			Collection:    m.String("collection"),
			InternetClass: m.String("internetClass"),
			SelectedColor: m.String("selectedColor"),
			SelectedSize:  m.String("selectedSize"),
		})
	}
	return o
}

func EncodeContact(c *domain.ContactRequest) docstore.Fields {
	return docstore.Fields{
		FieldName:      c.Name,
		FieldFirstname: c.Firstname,
		FieldEmail:     c.Email,
		FieldPhone:     c.Phone,
		FieldReason:    c.Reason,
		FieldStatus:    string(c.Status),
		FieldCreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func DecodeContact(doc *docstore.Document) *domain.ContactRequest {
	f := doc.Fields
	return &domain.ContactRequest{
		ID:        doc.ID,
		Name:      f.String(FieldName),
		Firstname: f.String(FieldFirstname),
		Email:     f.String(FieldEmail),
		Phone:     f.String(FieldPhone),
		Reason:    f.String(FieldReason),
		Status:    decodeStatus(f),
		CreatedAt: createdAt(f),
	}
}

// decodeStatus treats a missing or unrecognised status as pending.
func decodeStatus(f docstore.Fields) domain.Status {
	st, err := domain.ParseStatus(f.String(FieldStatus))
	if err != nil {
		return domain.StatusPending
	}
	return st
}

func createdAt(f docstore.Fields) time.Time {
	t, _ := f.Time(FieldCreatedAt)
	return t
}
