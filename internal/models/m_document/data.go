package m_document

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildReplaceMap prepares every column of a document row. fields must already
// be JSON-compatible.
func BuildReplaceMap(collection, docID string, fields map[string]interface{}, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColCollection: collection,
		ColDocID:      docID,
		ColFields:     spanner.NullJSON{Value: fields, Valid: true},
		ColUpdatedAt:  updatedAt,
	}
}

// ReplaceMutation writes the full row, dropping any previous field bag.
func ReplaceMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Replace(TableName, cols, vals)
}

func DeleteMutation(collection, docID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{collection, docID})
}

func Key(collection, docID string) spanner.Key {
	return spanner.Key{collection, docID}
}
