package repo

import (
	"time"

	"github.com/murkotick/storefront-service/internal/app/feature/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCreatedAt   = "createdAt"
	FieldFeedback    = "feedback"
	FieldAdminReply  = "adminReply"
	FieldFeatureID   = "featureId"
	FieldText        = "text"
)

// FeatureRepo builds feedback writes. Replies live in their own documents so
// answering never rewrites the feedback list that users append to.
type FeatureRepo struct{}

func NewFeatureRepo() *FeatureRepo {
	return &FeatureRepo{}
}

func (r *FeatureRepo) AppendFeedbackMut(featureID string, fb domain.Feedback) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpAppend,
		Collection: domain.CollectionFeatures,
		ID:         featureID,
		Field:      FieldFeedback,
		Value: docstore.Fields{
			"id":           fb.ID,
			"authorId":     fb.AuthorID,
			"authorEmail":  fb.AuthorEmail,
			FieldText:      fb.Text,
			FieldCreatedAt: formatTime(fb.CreatedAt),
		},
	}
}

func (r *FeatureRepo) ReplyMut(featureID, feedbackID string, reply domain.Reply) docstore.Op {
	return docstore.Op{
		Kind:       docstore.OpSet,
		Collection: domain.CollectionReplies,
		ID:         feedbackID,
		Fields: docstore.Fields{
			FieldFeatureID: featureID,
			FieldText:      reply.Text,
			FieldCreatedAt: formatTime(reply.CreatedAt),
		},
	}
}

// DecodeFeature rebuilds a feature; replies maps feedback IDs to stored replies.
func DecodeFeature(doc *docstore.Document, replies map[string]domain.Reply) *domain.Feature {
	f := doc.Fields
	out := &domain.Feature{
		ID:          doc.ID,
		Title:       f.String(FieldTitle),
		Description: f.String(FieldDescription),
	}
	out.CreatedAt, _ = f.Time(FieldCreatedAt)
	for _, m := range f.Maps(FieldFeedback) {
		fb := domain.Feedback{
			ID:          m.String("id"),
			AuthorID:    m.String("authorId"),
			AuthorEmail: m.String("authorEmail"),
			Text:        m.String(FieldText),
		}
		fb.CreatedAt, _ = m.Time(FieldCreatedAt)
		if nested := m.Map(FieldAdminReply); nested != nil {
			r := DecodeReply(nested)
			fb.AdminReply = &r
		}
		if r, ok := replies[fb.ID]; ok {
			r := r
			fb.AdminReply = &r
		}
		out.Feedback = append(out.Feedback, fb)
	}
	return out
}

// EncodeFeature returns a feature with its replies folded into each entry,
// the shape clients read.
func EncodeFeature(f *domain.Feature) docstore.Fields {
	feedback := make([]any, 0, len(f.Feedback))
	for _, fb := range f.Feedback {
		entry := docstore.Fields{
			"id":           fb.ID,
			"authorId":     fb.AuthorID,
			"authorEmail":  fb.AuthorEmail,
			FieldText:      fb.Text,
			FieldCreatedAt: formatTime(fb.CreatedAt),
		}
		if fb.AdminReply != nil {
			entry[FieldAdminReply] = docstore.Fields{
				FieldText:      fb.AdminReply.Text,
				FieldCreatedAt: formatTime(fb.AdminReply.CreatedAt),
			}
		}
		feedback = append(feedback, entry)
	}
	return docstore.Fields{
		FieldTitle:       f.Title,
		FieldDescription: f.Description,
		FieldCreatedAt:   formatTime(f.CreatedAt),
		FieldFeedback:    feedback,
	}
}

func DecodeReply(f docstore.Fields) domain.Reply {
	r := domain.Reply{Text: f.String(FieldText)}
	r.CreatedAt, _ = f.Time(FieldCreatedAt)
	return r
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
