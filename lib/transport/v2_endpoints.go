package transport

import (
	"github.com/SteveTM-git/decentraart/controllers"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.MarketplaceService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/v2/health", controllers.NewHealthController().Check)
	e.POST("/v2/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware)
	if svc.Config.AllowAccountCreation {
		e.POST("/v2/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, logMw)
	}
	//require admin token for the admin endpoints
	if svc.Config.AdminToken != "" {
		e.PUT("/v2/admin/users", controllers.NewUpdateUserController(svc).UpdateUser, strictRateLimitMiddleware, adminMw)
		e.PUT("/v2/admin/feerate", controllers.NewFeeRateController(svc).SetFeeRate, strictRateLimitMiddleware, adminMw)
	}

	assetCtrl := controllers.NewAssetController(svc)
	listingCtrl := controllers.NewListingController(svc)
	offerCtrl := controllers.NewOfferController(svc)
	payoutCtrl := controllers.NewPayoutController(svc)
	balanceCtrl := controllers.NewBalanceController(svc)

	// public marketplace reads, cached briefly to keep browse traffic off the db
	e.GET("/v2/listings", listingCtrl.GetListedAssets, CreateCacheClient().Middleware())
	e.GET("/v2/assets/count", assetCtrl.GetAssetCount, CreateCacheClient().Middleware())
	e.GET("/v2/feerate", controllers.NewFeeRateController(svc).GetFeeRate)
	e.GET("/v2/assets/:asset_id/qr", controllers.NewShareController(svc).QR)

	secured.POST("/v2/assets", assetCtrl.MintAsset)
	secured.GET("/v2/assets/mine", assetCtrl.GetMyAssets)
	secured.GET("/v2/assets/:asset_id", assetCtrl.GetAsset)
	secured.GET("/v2/assets/:asset_id/listing", listingCtrl.GetListing)
	secured.GET("/v2/assets/:asset_id/offers", offerCtrl.GetOffers)
	secured.GET("/v2/assets/:asset_id/events", controllers.NewEventController(svc).GetAssetEvents)
	secured.GET("/v2/events", controllers.NewEventController(svc).GetAllEvents)

	securedWithStrictRateLimit.POST("/v2/assets/:asset_id/list", listingCtrl.ListAsset)
	securedWithStrictRateLimit.POST("/v2/assets/:asset_id/unlist", listingCtrl.UnlistAsset)
	securedWithStrictRateLimit.POST("/v2/assets/:asset_id/buy", controllers.NewPurchaseController(svc).Purchase)
	securedWithStrictRateLimit.POST("/v2/assets/:asset_id/offers", offerCtrl.MakeOffer)
	securedWithStrictRateLimit.POST("/v2/assets/:asset_id/offers/:offer_idx/accept", offerCtrl.AcceptOffer)
	securedWithStrictRateLimit.POST("/v2/assets/:asset_id/offers/:offer_idx/cancel", offerCtrl.CancelOffer)

	secured.GET("/v2/balance", balanceCtrl.Balance)
	secured.GET("/v2/transactions", balanceCtrl.GetTransactionEntries)
	securedWithStrictRateLimit.POST("/v2/deposit", balanceCtrl.Deposit)
	securedWithStrictRateLimit.POST("/v2/payouts", payoutCtrl.RequestPayout)
	secured.GET("/v2/payouts", payoutCtrl.GetPayouts)
	secured.GET("/v2/payouts/:external_id", payoutCtrl.GetPayout)

	e.GET("/v2/events/stream", controllers.NewEventStreamController(svc).StreamEvents)
}
