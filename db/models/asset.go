package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Asset : Asset Model
//
// Asset ids are allocated by the database sequence and are monotonic,
// starting at 1. Assets are never deleted (there is no burn), so the id
// space is append-only. Creator, royalty rate and the metadata URI are
// fixed at mint time; only the owner changes, and only through settlement.
type Asset struct {
	ID          int64        `json:"id" bun:",pk,autoincrement"`
	OwnerID     int64        `json:"owner_id" bun:",notnull"`
	Owner       *User        `json:"-" bun:"rel:belongs-to,join:owner_id=id"`
	CreatorID   int64        `json:"creator_id" bun:",notnull"`
	Creator     *User        `json:"-" bun:"rel:belongs-to,join:creator_id=id"`
	RoyaltyRate int64        `json:"royalty_rate" bun:",notnull"`
	MetadataURI string       `json:"metadata_uri" bun:",notnull"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

func (a *Asset) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		a.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Asset)(nil)
