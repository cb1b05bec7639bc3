package service

import (
	"context"
	"database/sql"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/uptrace/bun"
)

func (svc *MarketplaceService) FeeRate(ctx context.Context) (int64, error) {
	var policy models.FeePolicy
	err := svc.DB.NewSelect().Model(&policy).Limit(1).Scan(ctx)
	if err != nil {
		return 0, err
	}
	return policy.Rate, nil
}

// SetFeeRate changes the marketplace fee. The admin capability is
// enforced at the transport layer; the rate bounds are enforced here.
func (svc *MarketplaceService) SetFeeRate(ctx context.Context, newRate int64) error {
	if newRate < 0 || newRate > common.MaxFeeRate {
		return responses.InvalidFeeRateError
	}
	var event models.Event
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var policy models.FeePolicy
		err := tx.NewSelect().Model(&policy).For("UPDATE").Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		policy.Rate = newRate
		if _, err = tx.NewUpdate().Model(&policy).Column("rate", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		event = models.Event{
			Kind:    common.EventKindFeeRateChanged,
			ActorID: svc.OperatorID,
			Amount:  newRate,
		}
		return appendEvent(ctx, tx, &event)
	})
	if err != nil {
		return err
	}
	svc.publishEvent(event)
	return nil
}

// feeRateFor reads the fee rate inside a settlement transaction so a
// concurrent rate change cannot land in the middle of a split.
func feeRateFor(ctx context.Context, tx bun.Tx) (int64, error) {
	var policy models.FeePolicy
	err := tx.NewSelect().Model(&policy).Limit(1).Scan(ctx)
	if err != nil {
		return 0, err
	}
	return policy.Rate, nil
}
