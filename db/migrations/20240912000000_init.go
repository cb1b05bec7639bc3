package migrations

import (
	"context"

	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.User)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Account)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Asset)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Listing)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Offer)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.TransactionEntry)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Event)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Payout)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.FeePolicy)(nil)).Exec(ctx); err != nil {
			return err
		}

		// Every transaction entry is one credit and one debit, so the
		// per-account ledger is a view over both sides.
		sql := `
			CREATE VIEW account_ledgers(
				account_id,
				entry_id,
				amount
			) AS
			SELECT
				transaction_entries.credit_account_id,
				transaction_entries.id,
				transaction_entries.amount
			FROM
				transaction_entries
			UNION ALL
			SELECT
				transaction_entries.debit_account_id,
				transaction_entries.id,
				(0 - transaction_entries.amount)
			FROM
				transaction_entries;
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}

		return nil
	}, nil)
}
