package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/security"
	"github.com/SteveTM-git/decentraart/lib/tokens"
	"github.com/SteveTM-git/decentraart/rabbitmq"
	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

type MarketplaceService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	EventPubSub    *Pubsub
	RabbitMQClient rabbitmq.Client

	// id of the operator user whose fees account collects marketplace fees
	OperatorID int64
}

// InitMarketplace makes sure the ledger-level records exist: the operator
// user that collects marketplace fees, and the fee policy row with its
// default rate. Safe to call on every startup.
func (svc *MarketplaceService) InitMarketplace(ctx context.Context) error {
	operator, err := svc.FindUserByLogin(ctx, svc.Config.OperatorLogin)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		operator, err = svc.CreateUser(ctx, svc.Config.OperatorLogin, "")
		if err != nil {
			return err
		}
	}
	svc.OperatorID = operator.ID

	var policy models.FeePolicy
	err = svc.DB.NewSelect().Model(&policy).Limit(1).Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		policy = models.FeePolicy{Rate: common.DefaultFeeRate}
		if _, err = svc.DB.NewInsert().Model(&policy).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (svc *MarketplaceService) GenerateToken(ctx context.Context, login, password, inRefreshToken string) (accessToken, refreshToken string, err error) {
	var user *models.User

	switch {
	case login != "" || password != "":
		{
			if user, err = svc.FindUserByLogin(ctx, login); err != nil {
				return "", "", errors.New("bad auth")
			}
			if !security.VerifyPassword(user.Password, password) {
				return "", "", errors.New("bad auth")
			}
		}
	case inRefreshToken != "":
		{
			userId, err := tokens.ParseRefreshToken(svc.Config.JWTSecret, inRefreshToken)
			if err != nil {
				return "", "", errors.New("bad auth")
			}
			if user, err = svc.FindUser(ctx, userId); err != nil {
				return "", "", errors.New("bad auth")
			}
		}
	default:
		{
			return "", "", errors.New("login and password or refresh token is required")
		}
	}

	if user.Deactivated {
		return "", "", errors.New("bad auth")
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
