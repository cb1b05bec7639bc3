package models

// Account : Account Model
//
// Every user owns one account per type (incoming, current, outgoing,
// escrow, fees). Balances are never stored; they are the sum of the
// account's entries in the account_ledgers view.
type Account struct {
	ID     int64  `bun:",pk,autoincrement"`
	UserID int64  `bun:",notnull"`
	User   *User  `bun:"rel:belongs-to,join:user_id=id"`
	Type   string `bun:",notnull"`
}
