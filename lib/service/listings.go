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

// ListAsset puts an asset up for sale. The owner check runs against the
// locked asset row, never against a cached owner. Re-listing an already
// listed asset overwrites seller and price and emits a fresh event.
func (svc *MarketplaceService) ListAsset(ctx context.Context, userID, assetID, price int64) (*models.Listing, error) {
	if price <= 0 {
		return nil, responses.InvalidPriceError
	}

	var listing *models.Listing
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		asset, err := lockAsset(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if asset.OwnerID != userID {
			return responses.NotOwnerError
		}

		listing, err = findListing(ctx, tx, assetID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			listing = &models.Listing{AssetID: assetID, UserID: userID, Price: price, Active: true}
			if _, err = tx.NewInsert().Model(listing).Exec(ctx); err != nil {
				return err
			}
		} else {
			listing.UserID = userID
			listing.Price = price
			listing.Active = true
			if _, err = tx.NewUpdate().Model(listing).Column("user_id", "price", "active", "updated_at").WherePK().Exec(ctx); err != nil {
				return err
			}
		}

		event = models.Event{
			Kind:    common.EventKindAssetListed,
			AssetID: assetID,
			ActorID: userID,
			Amount:  price,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return nil, err
	}
	svc.publishEvent(event)
	return listing, nil
}

// UnlistAsset withdraws an active listing. Unlisting twice is an error,
// not a no-op.
func (svc *MarketplaceService) UnlistAsset(ctx context.Context, userID, assetID int64) error {
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		asset, err := lockAsset(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if asset.OwnerID != userID {
			return responses.NotOwnerError
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

		listing.Active = false
		if _, err = tx.NewUpdate().Model(listing).Column("active", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}

		event = models.Event{
			Kind:    common.EventKindAssetUnlisted,
			AssetID: assetID,
			ActorID: userID,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return err
	}
	svc.publishEvent(event)
	return nil
}

func (svc *MarketplaceService) FindListing(ctx context.Context, assetID int64) (*models.Listing, error) {
	// the asset must exist even when it was never listed
	if _, err := svc.FindAsset(ctx, assetID); err != nil {
		return nil, err
	}
	var listing models.Listing
	err := svc.DB.NewSelect().Model(&listing).Where("asset_id = ?", assetID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// an asset that was never listed reads as an inactive listing
			return &models.Listing{AssetID: assetID}, nil
		}
		return nil, err
	}
	return &listing, nil
}

// ListedAssets returns the active listings, a snapshot at call time.
func (svc *MarketplaceService) ListedAssets(ctx context.Context) ([]models.Listing, error) {
	listings := []models.Listing{}
	err := svc.DB.NewSelect().Model(&listings).Where("active = ?", true).OrderExpr("asset_id ASC").Scan(ctx)
	return listings, err
}

func findListing(ctx context.Context, tx bun.Tx, assetID int64) (*models.Listing, error) {
	var listing models.Listing
	err := tx.NewSelect().Model(&listing).Where("asset_id = ?", assetID).For("UPDATE").Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
