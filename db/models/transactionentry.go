package models

import (
	"time"
)

// TransactionEntry : Transaction Entries Model
//
// Double-entry bookkeeping: every fund movement debits one account and
// credits another for the same amount. Rows are append-only; there are
// no updates or reversals, a correction is a new entry.
type TransactionEntry struct {
	ID              int64     `bun:",pk,autoincrement"`
	UserID          int64     `bun:",notnull"`
	User            *User     `bun:"rel:belongs-to,join:user_id=id"`
	AssetID         int64     `bun:",nullzero"`
	Asset           *Asset    `bun:"rel:belongs-to,join:asset_id=id"`
	OfferID         int64     `bun:",nullzero"`
	Offer           *Offer    `bun:"rel:belongs-to,join:offer_id=id"`
	PayoutID        int64     `bun:",nullzero"`
	CreditAccountID int64     `bun:",notnull"`
	CreditAccount   *Account  `bun:"rel:belongs-to,join:credit_account_id=id"`
	DebitAccountID  int64     `bun:",notnull"`
	DebitAccount    *Account  `bun:"rel:belongs-to,join:debit_account_id=id"`
	Amount          int64     `bun:",notnull"`
	EntryType       string    `bun:",notnull"`
	CreatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
