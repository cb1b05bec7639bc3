package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Payout : Payout Model
//
// A withdrawal intent to an external destination. ExternalID is chosen by
// the caller and unique, which is what makes retrying a withdrawal safe:
// a second request with the same id fails instead of paying twice.
type Payout struct {
	ID          int64        `json:"id" bun:",pk,autoincrement"`
	UserID      int64        `json:"user_id" bun:",notnull"`
	User        *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	ExternalID  string       `json:"external_id" bun:",unique,notnull"`
	Destination string       `json:"destination" bun:",notnull"`
	Amount      int64        `json:"amount" bun:",notnull"`
	State       string       `json:"state" bun:",default:'initialized'"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
	SettledAt   bun.NullTime `json:"settled_at"`
}

func (p *Payout) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Payout)(nil)
