package m_revision

import (
	"time"

	"cloud.google.com/go/spanner"
)

// UpsertMutation stores the new revision of a collection.
func UpsertMutation(collection string, revision int64, updatedAt time.Time) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName,
		[]string{ColCollection, ColRevision, ColUpdatedAt},
		[]interface{}{collection, revision, updatedAt},
	)
}

func Key(collection string) spanner.Key {
	return spanner.Key{collection}
}
