package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/uptrace/bun"
)

// MakeOffer places a purchase offer on an asset and locks the offered
// amount in the bidder's escrow account. The funds stay locked until the
// offer is cancelled or accepted; both release paths run in one
// transaction with the offer's state change.
func (svc *MarketplaceService) MakeOffer(ctx context.Context, bidderID, assetID, amount int64) (*models.Offer, error) {
	if amount <= 0 {
		return nil, responses.InvalidAmountError
	}

	var offer *models.Offer
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := lockAsset(ctx, tx, assetID); err != nil {
			return err
		}

		currentAccount, err := accountFor(ctx, tx, common.AccountTypeCurrent, bidderID)
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

		// next submission index; the asset row lock serializes this
		nextIdx, err := tx.NewSelect().Model((*models.Offer)(nil)).Where("asset_id = ?", assetID).Count(ctx)
		if err != nil {
			return err
		}

		offer = &models.Offer{
			AssetID: assetID,
			Idx:     int64(nextIdx),
			UserID:  bidderID,
			Amount:  amount,
			State:   common.OfferStatePending,
		}
		if _, err = tx.NewInsert().Model(offer).Exec(ctx); err != nil {
			return err
		}

		escrowAccount, err := accountFor(ctx, tx, common.AccountTypeEscrow, bidderID)
		if err != nil {
			return err
		}
		entry := models.TransactionEntry{
			UserID:          bidderID,
			AssetID:         assetID,
			OfferID:         offer.ID,
			DebitAccountID:  currentAccount.ID,
			CreditAccountID: escrowAccount.ID,
			Amount:          amount,
			EntryType:       common.EntryTypeOfferEscrow,
		}
		if _, err = tx.NewInsert().Model(&entry).Exec(ctx); err != nil {
			return err
		}

		event = models.Event{
			Kind:    common.EventKindOfferMade,
			AssetID: assetID,
			ActorID: bidderID,
			Amount:  amount,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return nil, err
	}
	svc.publishEvent(event)
	return offer, nil
}

// CancelOffer releases the escrowed funds back to the bidder. Cancelling
// a resolved or unknown slot fails; indices are never recycled so a
// stale index cannot alias a newer offer.
func (svc *MarketplaceService) CancelOffer(ctx context.Context, callerID, assetID, offerIdx int64) error {
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := lockAsset(ctx, tx, assetID); err != nil {
			return err
		}
		offer, err := lockOffer(ctx, tx, assetID, offerIdx)
		if err != nil {
			return err
		}
		if offer.UserID != callerID {
			return responses.NotBidderError
		}
		if offer.State != common.OfferStatePending {
			return responses.UnknownOfferError
		}

		escrowAccount, err := accountFor(ctx, tx, common.AccountTypeEscrow, offer.UserID)
		if err != nil {
			return err
		}
		currentAccount, err := accountFor(ctx, tx, common.AccountTypeCurrent, offer.UserID)
		if err != nil {
			return err
		}
		entry := models.TransactionEntry{
			UserID:          offer.UserID,
			AssetID:         assetID,
			OfferID:         offer.ID,
			DebitAccountID:  escrowAccount.ID,
			CreditAccountID: currentAccount.ID,
			Amount:          offer.Amount,
			EntryType:       common.EntryTypeOfferRelease,
		}
		if _, err = tx.NewInsert().Model(&entry).Exec(ctx); err != nil {
			return err
		}

		if err = resolveOffer(ctx, tx, offer, common.OfferStateCancelled); err != nil {
			return err
		}

		event = models.Event{
			Kind:    common.EventKindOfferCancelled,
			AssetID: assetID,
			ActorID: callerID,
			Amount:  offer.Amount,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return err
	}
	svc.publishEvent(event)
	return nil
}

// AcceptOffer settles a pending offer at its amount, paid out of the
// bidder's escrow. Escrow holds exactly the offered amount, so there is
// no excess to refund. Other pending offers on the asset are left
// untouched; their bidders reclaim escrow by cancelling.
func (svc *MarketplaceService) AcceptOffer(ctx context.Context, callerID, assetID, offerIdx int64) error {
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		asset, err := lockAsset(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if asset.OwnerID != callerID {
			return responses.NotOwnerError
		}
		offer, err := lockOffer(ctx, tx, assetID, offerIdx)
		if err != nil {
			return err
		}
		if offer.State != common.OfferStatePending {
			return responses.UnknownOfferError
		}

		err = svc.settleSale(ctx, tx, saleParams{
			asset:             asset,
			buyerID:           offer.UserID,
			price:             offer.Amount,
			sourceAccountType: common.AccountTypeEscrow,
			proceedsEntryType: common.EntryTypeOfferProceeds,
			offerID:           offer.ID,
		})
		if err != nil {
			return err
		}

		if err = resolveOffer(ctx, tx, offer, common.OfferStateAccepted); err != nil {
			return err
		}

		event = models.Event{
			Kind:           common.EventKindOfferAccepted,
			AssetID:        assetID,
			ActorID:        callerID,
			CounterpartyID: offer.UserID,
			Amount:         offer.Amount,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return err
	}
	svc.publishEvent(event)
	return nil
}

// OffersFor returns all offer slots of the asset in submission order,
// resolved ones included.
func (svc *MarketplaceService) OffersFor(ctx context.Context, assetID int64) ([]models.Offer, error) {
	if _, err := svc.FindAsset(ctx, assetID); err != nil {
		return nil, err
	}
	offers := []models.Offer{}
	err := svc.DB.NewSelect().Model(&offers).Where("asset_id = ?", assetID).OrderExpr("idx ASC").Scan(ctx)
	return offers, err
}

func lockOffer(ctx context.Context, tx bun.Tx, assetID, offerIdx int64) (*models.Offer, error) {
	var offer models.Offer
	err := tx.NewSelect().Model(&offer).Where("asset_id = ? AND idx = ?", assetID, offerIdx).For("UPDATE").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, responses.UnknownOfferError
		}
		return nil, err
	}
	return &offer, nil
}

func resolveOffer(ctx context.Context, tx bun.Tx, offer *models.Offer, state string) error {
	offer.State = state
	offer.ResolvedAt = bun.NullTime{Time: time.Now()}
	_, err := tx.NewUpdate().Model(offer).Column("state", "resolved_at", "updated_at").WherePK().Exec(ctx)
	return err
}
