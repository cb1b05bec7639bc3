package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/uptrace/bun"
)

// Deposit credits spendable funds. The incoming account is the bridge to
// the external funding collaborator and is the only account allowed to
// go negative: from the ledger's point of view it represents money that
// arrived from outside.
func (svc *MarketplaceService) Deposit(ctx context.Context, userID, amount int64) (*models.TransactionEntry, error) {
	if amount <= 0 {
		return nil, responses.InvalidAmountError
	}

	incomingAccount, err := svc.AccountFor(ctx, common.AccountTypeIncoming, userID)
	if err != nil {
		return nil, err
	}
	currentAccount, err := svc.AccountFor(ctx, common.AccountTypeCurrent, userID)
	if err != nil {
		return nil, err
	}
	entry := &models.TransactionEntry{
		UserID:          userID,
		DebitAccountID:  incomingAccount.ID,
		CreditAccountID: currentAccount.ID,
		Amount:          amount,
		EntryType:       common.EntryTypeDeposit,
	}
	if _, err := svc.DB.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// RequestPayout debits the user's spendable balance towards an external
// destination. The caller-chosen external id makes the call idempotent:
// retrying a payout that already went through fails with PayoutExists
// instead of paying twice.
func (svc *MarketplaceService) RequestPayout(ctx context.Context, userID int64, externalID, destination string, amount int64) (*models.Payout, error) {
	if amount <= 0 {
		return nil, responses.InvalidAmountError
	}

	payout := &models.Payout{
		UserID:      userID,
		ExternalID:  externalID,
		Destination: destination,
		Amount:      amount,
		State:       common.PayoutStateInitialized,
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Payout)(nil)).Where("external_id = ?", externalID).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return responses.PayoutExistsError
		}
		if _, err = tx.NewInsert().Model(payout).Exec(ctx); err != nil {
			return err
		}

		currentAccount, err := accountFor(ctx, tx, common.AccountTypeCurrent, userID)
		if err != nil {
			return err
		}
		balance, err := balanceFor(ctx, tx, currentAccount.ID)
		if err != nil {
			return err
		}
		if balance < amount {
			return responses.NotEnoughBalanceError
		}
		outgoingAccount, err := accountFor(ctx, tx, common.AccountTypeOutgoing, userID)
		if err != nil {
			return err
		}
		entry := models.TransactionEntry{
			UserID:          userID,
			PayoutID:        payout.ID,
			DebitAccountID:  currentAccount.ID,
			CreditAccountID: outgoingAccount.ID,
			Amount:          amount,
			EntryType:       common.EntryTypeWithdrawal,
		}
		if _, err = tx.NewInsert().Model(&entry).Exec(ctx); err != nil {
			return err
		}

		payout.State = common.PayoutStateSettled
		payout.SettledAt = bun.NullTime{Time: time.Now()}
		_, err = tx.NewUpdate().Model(payout).Column("state", "settled_at", "updated_at").WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

func (svc *MarketplaceService) FindPayout(ctx context.Context, userID int64, externalID string) (*models.Payout, error) {
	var payout models.Payout
	err := svc.DB.NewSelect().Model(&payout).Where("user_id = ? AND external_id = ?", userID, externalID).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (svc *MarketplaceService) PayoutsFor(ctx context.Context, userID int64) ([]models.Payout, error) {
	payouts := []models.Payout{}
	err := svc.DB.NewSelect().Model(&payouts).Where("user_id = ?", userID).OrderExpr("id DESC").Limit(100).Scan(ctx)
	return payouts, err
}
