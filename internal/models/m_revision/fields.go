package m_revision

const (
	TableName = "collection_revisions"

	ColCollection = "collection"
	ColRevision   = "revision"
	ColUpdatedAt  = "updated_at"
)
