package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/uptrace/bun"
)

// saleSplit is the integer fund split of a settled sale. All rates are
// basis points out of 1000 and division truncates toward zero, so
// Fee + Royalty + Proceeds == price holds exactly. No floating point
// is involved anywhere.
type saleSplit struct {
	Fee      int64
	Royalty  int64
	Proceeds int64
}

// splitPrice computes the split. Royalty is only owed when the seller is
// not the creator: a creator selling their own work gets the full
// non-fee share.
func splitPrice(price, feeRate, royaltyRate int64, sellerIsCreator bool) saleSplit {
	split := saleSplit{
		Fee: price * feeRate / common.RateDivisor,
	}
	if !sellerIsCreator {
		split.Royalty = price * royaltyRate / common.RateDivisor
	}
	split.Proceeds = price - split.Fee - split.Royalty
	return split
}

type saleParams struct {
	asset   *models.Asset
	buyerID int64
	price   int64
	// account the buyer's funds come from: current for a direct
	// purchase, escrow for an accepted offer
	sourceAccountType string
	proceedsEntryType string
	offerID           int64
}

// settleSale is the only code that moves sale funds and transfers
// ownership. It runs entirely inside the caller's transaction: the debit
// entries, the ownership change and the listing deactivation commit
// together or not at all. The asset row is already locked by the caller.
func (svc *MarketplaceService) settleSale(ctx context.Context, tx bun.Tx, p saleParams) error {
	sellerID := p.asset.OwnerID

	feeRate, err := feeRateFor(ctx, tx)
	if err != nil {
		return err
	}
	split := splitPrice(p.price, feeRate, p.asset.RoyaltyRate, sellerID == p.asset.CreatorID)
	if split.Proceeds < 0 {
		return responses.SplitExceedsPriceError
	}

	sourceAccount, err := accountFor(ctx, tx, p.sourceAccountType, p.buyerID)
	if err != nil {
		return err
	}
	balance, err := balanceFor(ctx, tx, sourceAccount.ID)
	if err != nil {
		return err
	}
	if balance < p.price {
		return responses.NotEnoughBalanceError
	}

	sellerAccount, err := accountFor(ctx, tx, common.AccountTypeCurrent, sellerID)
	if err != nil {
		return err
	}
	// zero-amount legs are omitted, and so are legs whose debit and
	// credit accounts coincide (a buyer paying themselves is a no-op)
	entries := make([]models.TransactionEntry, 0, 3)
	if split.Proceeds > 0 && sellerAccount.ID != sourceAccount.ID {
		entries = append(entries, models.TransactionEntry{
			UserID:          sellerID,
			AssetID:         p.asset.ID,
			OfferID:         p.offerID,
			DebitAccountID:  sourceAccount.ID,
			CreditAccountID: sellerAccount.ID,
			Amount:          split.Proceeds,
			EntryType:       p.proceedsEntryType,
		})
	}
	if split.Royalty > 0 {
		creatorAccount, err := accountFor(ctx, tx, common.AccountTypeCurrent, p.asset.CreatorID)
		if err != nil {
			return err
		}
		if creatorAccount.ID != sourceAccount.ID {
			entries = append(entries, models.TransactionEntry{
				UserID:          p.asset.CreatorID,
				AssetID:         p.asset.ID,
				OfferID:         p.offerID,
				DebitAccountID:  sourceAccount.ID,
				CreditAccountID: creatorAccount.ID,
				Amount:          split.Royalty,
				EntryType:       common.EntryTypeRoyalty,
			})
		}
	}
	if split.Fee > 0 {
		feesAccount, err := accountFor(ctx, tx, common.AccountTypeFees, svc.OperatorID)
		if err != nil {
			return err
		}
		entries = append(entries, models.TransactionEntry{
			UserID:          svc.OperatorID,
			AssetID:         p.asset.ID,
			OfferID:         p.offerID,
			DebitAccountID:  sourceAccount.ID,
			CreditAccountID: feesAccount.ID,
			Amount:          split.Fee,
			EntryType:       common.EntryTypeMarketFee,
		})
	}
	for i := range entries {
		if _, err := tx.NewInsert().Model(&entries[i]).Exec(ctx); err != nil {
			return err
		}
	}

	p.asset.OwnerID = p.buyerID
	if _, err := tx.NewUpdate().Model(p.asset).Column("owner_id", "updated_at").WherePK().Exec(ctx); err != nil {
		return err
	}

	// an active listing left by the previous owner must not survive the
	// transfer, whichever path the sale took
	listing, err := findListing(ctx, tx, p.asset.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if listing.Active {
		listing.Active = false
		if _, err := tx.NewUpdate().Model(listing).Column("active", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Purchase buys a listed asset outright. Payment above the listed price
// is not charged: the buyer is debited exactly the price, so the excess
// never leaves their account.
func (svc *MarketplaceService) Purchase(ctx context.Context, buyerID, assetID, payment int64) error {
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		asset, err := lockAsset(ctx, tx, assetID)
		if err != nil {
			return err
		}
		listing, err := findListing(ctx, tx, assetID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return responses.NotListedError
			}
			return err
		}
		if !listing.Active {
			return responses.NotListedError
		}
		if payment < listing.Price {
			return responses.InsufficientPaymentError
		}

		sellerID := asset.OwnerID
		err = svc.settleSale(ctx, tx, saleParams{
			asset:             asset,
			buyerID:           buyerID,
			price:             listing.Price,
			sourceAccountType: common.AccountTypeCurrent,
			proceedsEntryType: common.EntryTypeSaleProceeds,
		})
		if err != nil {
			return err
		}

		event = models.Event{
			Kind:           common.EventKindAssetSold,
			AssetID:        assetID,
			ActorID:        buyerID,
			CounterpartyID: sellerID,
			Amount:         listing.Price,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return err
	}
	svc.publishEvent(event)
	return nil
}
