package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/security"
	"github.com/uptrace/bun"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *MarketplaceService) CreateUser(ctx context.Context, login string, password string) (user *models.User, err error) {

	user = &models.User{}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		randLoginBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		user.Login = string(randLoginBytes)
	}

	if password == "" {
		randPasswordBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		password = string(randPasswordBytes)
	} else {
		if svc.Config.MinPasswordEntropy > 0 {
			entropy := passwordvalidator.GetEntropy(password)
			if entropy < float64(svc.Config.MinPasswordEntropy) {
				return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
			}
		}
	}
	user.Password = security.HashPassword(password)

	// Create user and the user's accounts
	// We use double-entry bookkeeping so we use 5 accounts: incoming, current, outgoing, escrow and fees
	// Wrapping this in a transaction in case something fails
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}
		accountTypes := []string{
			common.AccountTypeIncoming,
			common.AccountTypeCurrent,
			common.AccountTypeOutgoing,
			common.AccountTypeEscrow,
			common.AccountTypeFees,
		}
		for _, accountType := range accountTypes {
			account := models.Account{UserID: user.ID, Type: accountType}
			if _, err := tx.NewInsert().Model(&account).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	//return actual password in the response, not the hashed one
	user.Password = password
	return user, err
}

func (svc *MarketplaceService) UpdateUser(ctx context.Context, userId int64, deactivated bool) (*models.User, error) {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	user.Deactivated = deactivated
	_, err = svc.DB.NewUpdate().Model(user).WherePK().Exec(ctx)
	return user, err
}

func (svc *MarketplaceService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *MarketplaceService) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *MarketplaceService) AccountFor(ctx context.Context, accountType string, userId int64) (models.Account, error) {
	account := models.Account{}
	err := svc.DB.NewSelect().Model(&account).Where("user_id = ? AND type = ?", userId, accountType).Limit(1).Scan(ctx)
	return account, err
}

// BalanceFor sums the account's side of the ledger view. The current
// account holds spendable funds; escrow holds funds locked behind
// pending offers; fees holds the operator's accrued marketplace fees.
func (svc *MarketplaceService) BalanceFor(ctx context.Context, accountType string, userId int64) (int64, error) {
	var balance int64

	account, err := svc.AccountFor(ctx, accountType, userId)
	if err != nil {
		return balance, err
	}
	err = svc.DB.NewSelect().Table("account_ledgers").ColumnExpr("COALESCE(sum(account_ledgers.amount), 0) as balance").Where("account_ledgers.account_id = ?", account.ID).Scan(ctx, &balance)
	return balance, err
}

func (svc *MarketplaceService) CurrentUserBalance(ctx context.Context, userId int64) (int64, error) {
	return svc.BalanceFor(ctx, common.AccountTypeCurrent, userId)
}

func (svc *MarketplaceService) TransactionEntriesFor(ctx context.Context, userId int64) ([]models.TransactionEntry, error) {
	transactionEntries := []models.TransactionEntry{}
	err := svc.DB.NewSelect().Model(&transactionEntries).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return transactionEntries, err
}

// balanceForUpdate computes an account balance inside a transaction. The
// caller must already hold the row locks that serialize the operation.
func balanceFor(ctx context.Context, tx bun.Tx, accountID int64) (int64, error) {
	var balance int64
	err := tx.NewSelect().Table("account_ledgers").ColumnExpr("COALESCE(sum(account_ledgers.amount), 0) as balance").Where("account_ledgers.account_id = ?", accountID).Scan(ctx, &balance)
	return balance, err
}

func accountFor(ctx context.Context, tx bun.Tx, accountType string, userId int64) (models.Account, error) {
	account := models.Account{}
	err := tx.NewSelect().Model(&account).Where("user_id = ? AND type = ?", userId, accountType).Limit(1).Scan(ctx)
	if err != nil {
		return account, fmt.Errorf("could not find %s account for user %d: %w", accountType, userId, err)
	}
	return account, nil
}
