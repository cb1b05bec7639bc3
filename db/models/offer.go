package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Offer : Offer Model
//
// Idx is the per-asset submission index, assigned once when the offer is
// made. Indices are never reused or compacted: a cancelled or accepted
// offer keeps its slot and stays addressable for audit, it just leaves
// the pending state.
type Offer struct {
	ID         int64        `json:"id" bun:",pk,autoincrement"`
	AssetID    int64        `json:"asset_id" bun:",notnull"`
	Asset      *Asset       `json:"-" bun:"rel:belongs-to,join:asset_id=id"`
	Idx        int64        `json:"idx" bun:",notnull"`
	UserID     int64        `json:"bidder_id" bun:",notnull"`
	User       *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Amount     int64        `json:"amount" bun:",notnull"`
	State      string       `json:"state" bun:",notnull,default:'pending'"`
	CreatedAt  time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt  bun.NullTime `json:"updated_at"`
	ResolvedAt bun.NullTime `json:"resolved_at"`
}

func (o *Offer) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		o.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Offer)(nil)
