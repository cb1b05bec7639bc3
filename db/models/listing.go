package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Listing : Listing Model
//
// At most one row per asset, reused across listing cycles. While Active
// is true the seller must be the asset's current owner; settlement
// deactivates the row in the same transaction that moves ownership.
type Listing struct {
	ID        int64        `json:"id" bun:",pk,autoincrement"`
	AssetID   int64        `json:"asset_id" bun:",unique,notnull"`
	Asset     *Asset       `json:"-" bun:"rel:belongs-to,join:asset_id=id"`
	UserID    int64        `json:"seller_id" bun:",notnull"`
	User      *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Price     int64        `json:"price" bun:",notnull"`
	Active    bool         `json:"active" bun:",notnull"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

func (l *Listing) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		l.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Listing)(nil)
