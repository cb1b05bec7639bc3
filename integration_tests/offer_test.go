package integration_tests

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/SteveTM-git/decentraart/controllers"
	"github.com/SteveTM-git/decentraart/lib"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/SteveTM-git/decentraart/lib/tokens"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OfferTestSuite struct {
	TestSuite
	service    *service.MarketplaceService
	aliceToken string
	bobToken   string
	carolToken string
}

func (suite *OfferTestSuite) SetupSuite() {
	svc, err := MarketplaceTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 3)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]
	suite.carolToken = userTokens[2]
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.Use(tokens.Middleware(suite.service.Config.JWTSecret))
	assetCtrl := controllers.NewAssetController(suite.service)
	offerCtrl := controllers.NewOfferController(suite.service)
	balanceCtrl := controllers.NewBalanceController(suite.service)
	suite.echo.POST("/v2/assets", assetCtrl.MintAsset)
	suite.echo.GET("/v2/assets/:asset_id", assetCtrl.GetAsset)
	suite.echo.POST("/v2/assets/:asset_id/offers", offerCtrl.MakeOffer)
	suite.echo.GET("/v2/assets/:asset_id/offers", offerCtrl.GetOffers)
	suite.echo.POST("/v2/assets/:asset_id/offers/:offer_idx/accept", offerCtrl.AcceptOffer)
	suite.echo.POST("/v2/assets/:asset_id/offers/:offer_idx/cancel", offerCtrl.CancelOffer)
	suite.echo.GET("/v2/balance", balanceCtrl.Balance)
	suite.echo.POST("/v2/deposit", balanceCtrl.Deposit)
}

func (suite *OfferTestSuite) TearDownTest() {
	clearTable(suite.service, "transaction_entries")
	clearTable(suite.service, "events")
	clearTable(suite.service, "offers")
	clearTable(suite.service, "listings")
	clearTable(suite.service, "assets")
}

func (suite *OfferTestSuite) TestMakeAndCancelOffer() {
	asset := suite.mintAssetReq("ipfs://QmOffered", 0, suite.aliceToken)
	suite.depositReq(1000, suite.bobToken)

	rec := suite.makeOfferReq(asset.ID, 800, suite.bobToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	offer := &controllers.Offer{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(offer))
	assert.Equal(suite.T(), int64(0), offer.Idx)
	assert.Equal(suite.T(), "pending", offer.State)

	// the offered amount is escrowed, not spendable
	bobBalance := suite.balanceReq(suite.bobToken)
	assert.Equal(suite.T(), int64(200), bobBalance.Balance)
	assert.Equal(suite.T(), int64(800), bobBalance.Escrow)

	rec = suite.request(http.MethodPost, fmt.Sprintf("/v2/assets/%d/offers/%d/cancel", asset.ID, offer.Idx), suite.bobToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// escrow released in full
	bobBalance = suite.balanceReq(suite.bobToken)
	assert.Equal(suite.T(), int64(1000), bobBalance.Balance)
	assert.Equal(suite.T(), int64(0), bobBalance.Escrow)

	// cancelling twice fails, the slot is resolved
	rec = suite.request(http.MethodPost, fmt.Sprintf("/v2/assets/%d/offers/%d/cancel", asset.ID, offer.Idx), suite.bobToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.UnknownOfferError.Code, errorResponse.Code)
}

func (suite *OfferTestSuite) TestAcceptOffer() {
	bobId := getUserIdFromToken(suite.bobToken)

	// creator sale, so the split is fee + proceeds only
	asset := suite.mintAssetReq("ipfs://QmAccepted", 50, suite.aliceToken)
	suite.depositReq(1000, suite.bobToken)
	suite.depositReq(1000, suite.carolToken)

	rec := suite.makeOfferReq(asset.ID, 800, suite.bobToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	bobOffer := &controllers.Offer{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(bobOffer))

	// a competing offer from carol gets the next index
	rec = suite.makeOfferReq(asset.ID, 700, suite.carolToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	carolOffer := &controllers.Offer{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(carolOffer))
	assert.Equal(suite.T(), bobOffer.Idx+1, carolOffer.Idx)

	rec = suite.request(http.MethodPost, fmt.Sprintf("/v2/assets/%d/offers/%d/accept", asset.ID, bobOffer.Idx), suite.aliceToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// fee 20 (2.5% of 800), no royalty on a creator sale, alice nets 780
	aliceBalance := suite.balanceReq(suite.aliceToken)
	assert.Equal(suite.T(), int64(780), aliceBalance.Balance)
	bobBalance := suite.balanceReq(suite.bobToken)
	assert.Equal(suite.T(), int64(200), bobBalance.Balance)
	assert.Equal(suite.T(), int64(0), bobBalance.Escrow)

	// carol's offer is untouched and still escrowed
	carolBalance := suite.balanceReq(suite.carolToken)
	assert.Equal(suite.T(), int64(300), carolBalance.Balance)
	assert.Equal(suite.T(), int64(700), carolBalance.Escrow)

	// ownership moved to bob
	rec = suite.request(http.MethodGet, fmt.Sprintf("/v2/assets/%d", asset.ID), suite.bobToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	boughtAsset := &controllers.Asset{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(boughtAsset))
	assert.Equal(suite.T(), bobId, boughtAsset.OwnerID)

	// both slots stay addressable, bob's resolved, carol's pending
	rec = suite.request(http.MethodGet, fmt.Sprintf("/v2/assets/%d/offers", asset.ID), suite.aliceToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	offersResponse := &controllers.GetOffersResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(offersResponse))
	assert.Len(suite.T(), offersResponse.Offers, 2)
	assert.Equal(suite.T(), "accepted", offersResponse.Offers[0].State)
	assert.Equal(suite.T(), "pending", offersResponse.Offers[1].State)
}

func (suite *OfferTestSuite) TestAcceptOfferNotOwner() {
	asset := suite.mintAssetReq("ipfs://QmGuarded", 0, suite.aliceToken)
	suite.depositReq(1000, suite.bobToken)

	rec := suite.makeOfferReq(asset.ID, 500, suite.bobToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	offer := &controllers.Offer{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(offer))

	// only the owner accepts
	rec = suite.request(http.MethodPost, fmt.Sprintf("/v2/assets/%d/offers/%d/accept", asset.ID, offer.Idx), suite.carolToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.NotOwnerError.Code, errorResponse.Code)

	// only the bidder cancels
	rec = suite.request(http.MethodPost, fmt.Sprintf("/v2/assets/%d/offers/%d/cancel", asset.ID, offer.Idx), suite.carolToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	errorResponse = checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.NotBidderError.Code, errorResponse.Code)
}

func (suite *OfferTestSuite) TestOfferInvalidAmount() {
	asset := suite.mintAssetReq("ipfs://QmNothing", 0, suite.aliceToken)
	suite.depositReq(1000, suite.bobToken)

	for _, amount := range []int64{0, -100} {
		rec := suite.makeOfferReq(asset.ID, amount, suite.bobToken)
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
		errorResponse := checkErrResponse(&suite.TestSuite, rec)
		assert.Equal(suite.T(), responses.InvalidAmountError.Code, errorResponse.Code)
	}
}

func (suite *OfferTestSuite) TestOfferWithoutFunds() {
	asset := suite.mintAssetReq("ipfs://QmExpensive", 0, suite.aliceToken)

	rec := suite.makeOfferReq(asset.ID, 500, suite.carolToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.NotEnoughBalanceError.Code, errorResponse.Code)
}

func TestOfferTestSuite(t *testing.T) {
	suite.Run(t, new(OfferTestSuite))
}
