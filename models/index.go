package models

// Index is the message emitted to the indexing channel whenever an entity
// is created, updated or deleted.
type Index struct {
	EntityType string `json:"entity_type"`
	EntityId   string `json:"entity_id"`
	Method     string `json:"method"`
}
