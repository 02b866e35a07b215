package m_document

const (
	TableName = "documents"

	ColCollection = "collection"
	ColDocID      = "doc_id"
	ColFields     = "fields"
	ColUpdatedAt  = "updated_at"
)

// Columns is the read order used by the document store.
var Columns = []string{ColCollection, ColDocID, ColFields, ColUpdatedAt}
