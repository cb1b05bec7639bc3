package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// FeePolicy : Fee Policy Model
//
// Single row holding the marketplace fee rate in basis points out of
// 1000. Created at ledger initialization with the default rate; changed
// only through the admin endpoint.
type FeePolicy struct {
	ID        int64        `json:"id" bun:",pk,autoincrement"`
	Rate      int64        `json:"rate" bun:",notnull"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

func (f *FeePolicy) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		f.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*FeePolicy)(nil)
