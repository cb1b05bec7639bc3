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

// MintAsset allocates the next asset id and records the caller as both
// owner and creator. The royalty rate and metadata URI are frozen here;
// the URI is stored opaquely and never parsed.
func (svc *MarketplaceService) MintAsset(ctx context.Context, userID int64, metadataURI string, royaltyRate int64) (*models.Asset, error) {
	if royaltyRate < 0 || royaltyRate > common.MaxRoyaltyRate {
		return nil, responses.InvalidRoyaltyError
	}

	asset := &models.Asset{
		OwnerID:     userID,
		CreatorID:   userID,
		RoyaltyRate: royaltyRate,
		MetadataURI: metadataURI,
	}
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(asset).Exec(ctx); err != nil {
			return err
		}
		event = models.Event{
			Kind:        common.EventKindAssetMinted,
			AssetID:     asset.ID,
			ActorID:     userID,
			MetadataURI: metadataURI,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return nil, err
	}
	svc.publishEvent(event)
	return asset, nil
}

func (svc *MarketplaceService) FindAsset(ctx context.Context, assetID int64) (*models.Asset, error) {
	var asset models.Asset
	err := svc.DB.NewSelect().Model(&asset).Where("id = ?", assetID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, responses.UnknownAssetError
		}
		return nil, err
	}
	return &asset, nil
}

func (svc *MarketplaceService) AssetsByOwner(ctx context.Context, userID int64) ([]models.Asset, error) {
	assets := []models.Asset{}
	err := svc.DB.NewSelect().Model(&assets).Where("owner_id = ?", userID).OrderExpr("id ASC").Scan(ctx)
	return assets, err
}

// TotalAssets is the count of minted assets. Assets are never destroyed,
// so the count only grows.
func (svc *MarketplaceService) TotalAssets(ctx context.Context) (int, error) {
	return svc.DB.NewSelect().Model((*models.Asset)(nil)).Count(ctx)
}

// lockAsset loads an asset row FOR UPDATE. Every mutating operation goes
// through this first, which serializes all writes touching one asset.
func lockAsset(ctx context.Context, tx bun.Tx, assetID int64) (*models.Asset, error) {
	var asset models.Asset
	err := tx.NewSelect().Model(&asset).Where("id = ?", assetID).For("UPDATE").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, responses.UnknownAssetError
		}
		return nil, err
	}
	return &asset, nil
}
