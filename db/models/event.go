package models

import (
	"time"
)

// Event : Event Model
//
// Append-only marketplace log. An event row is inserted in the same
// database transaction as the mutation it describes, so the log order is
// the settlement order and a reader can never observe an event for a
// half-applied operation.
type Event struct {
	ID             int64     `json:"id" bun:",pk,autoincrement"`
	Kind           string    `json:"kind" bun:",notnull"`
	AssetID        int64     `json:"asset_id,omitempty" bun:",nullzero"`
	ActorID        int64     `json:"actor_id" bun:",notnull"`
	CounterpartyID int64     `json:"counterparty_id,omitempty" bun:",nullzero"`
	Amount         int64     `json:"amount,omitempty" bun:",nullzero"`
	MetadataURI    string    `json:"metadata_uri,omitempty" bun:",nullzero"`
	CreatedAt      time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
