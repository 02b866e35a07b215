package httpapi

import (
	"time"

	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/submit_order"
	"github.com/murkotick/storefront-service/internal/transport/wire"
)

type CartLineRequest struct {
	ID            string `json:"id"`
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

type CartRequest struct {
	Items []CartLineRequest `json:"items"`
}

func (r CartRequest) lines() []submit_order.Line {
	out := make([]submit_order.Line, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, submit_order.Line{ProductID: it.ID, SelectedColor: it.SelectedColor, SelectedSize: it.SelectedSize})
	}
	return out
}

type OrderRequest struct {
	CartRequest
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	TransactionID string `json:"transactionId"`
	CustomerNotes string `json:"customerNotes,omitempty"`
}

type QuoteLineResponse struct {
	Product       map[string]any `json:"product"`
	SelectedColor string         `json:"selectedColor,omitempty"`
	SelectedSize  string         `json:"selectedSize,omitempty"`
}

type QuoteResponse struct {
	Items       []QuoteLineResponse `json:"items"`
	Total       int64               `json:"total"`
	DeliveryFee int64               `json:"deliveryFee"`
	FinalTotal  int64               `json:"finalTotal"`
}

func toQuoteResponse(q *submit_order.Quote) QuoteResponse {
	out := QuoteResponse{
		Items:       make([]QuoteLineResponse, 0, len(q.Lines)),
		Total:       q.Total,
		DeliveryFee: q.DeliveryFee,
		FinalTotal:  q.FinalTotal,
	}
	for _, l := range q.Lines {
		out.Items = append(out.Items, QuoteLineResponse{
			Product:       wire.Item(l.Product),
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
		})
	}
	return out
}

type ContactRequest struct {
	Name      string `json:"name"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Reason    string `json:"reason"`
}

type SubscriptionRequest struct {
	Plan          string `json:"plan"`
	TransactionID string `json:"transactionId"`
}

type SubscriptionResponse struct {
	SubscriptionID string    `json:"subscriptionId"`
	Amount         int64     `json:"amount"`
	GraceUntil     time.Time `json:"graceUntil"`
}

type FeedbackRequest struct {
	Text string `json:"text"`
}

type SpeechRequest struct {
	Text string `json:"text"`
}

type SpeechResponse struct {
	AudioURL string `json:"audioUrl"`
}

type AccessResponse struct {
	HasAccess bool `json:"hasAccess"`
}
