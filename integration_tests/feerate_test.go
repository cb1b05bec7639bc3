package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"testing"

	"github.com/SteveTM-git/decentraart/common"
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

type FeeRateTestSuite struct {
	TestSuite
	service    *service.MarketplaceService
	aliceToken string
	bobToken   string
}

func (suite *FeeRateTestSuite) SetupSuite() {
	svc, err := MarketplaceTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	feeRateCtrl := controllers.NewFeeRateController(suite.service)
	suite.echo.GET("/v2/feerate", feeRateCtrl.GetFeeRate)
	suite.echo.PUT("/v2/admin/feerate", feeRateCtrl.SetFeeRate)
	suite.echo.Use(tokens.Middleware(suite.service.Config.JWTSecret))
	assetCtrl := controllers.NewAssetController(suite.service)
	listingCtrl := controllers.NewListingController(suite.service)
	balanceCtrl := controllers.NewBalanceController(suite.service)
	suite.echo.POST("/v2/assets", assetCtrl.MintAsset)
	suite.echo.POST("/v2/assets/:asset_id/list", listingCtrl.ListAsset)
	suite.echo.POST("/v2/assets/:asset_id/buy", controllers.NewPurchaseController(suite.service).Purchase)
	suite.echo.GET("/v2/balance", balanceCtrl.Balance)
	suite.echo.POST("/v2/deposit", balanceCtrl.Deposit)
}

func (suite *FeeRateTestSuite) TearDownTest() {
	// restore the default so suites don't leak fee changes into each other
	suite.service.SetFeeRate(context.Background(), common.DefaultFeeRate)
	clearTable(suite.service, "transaction_entries")
	clearTable(suite.service, "events")
	clearTable(suite.service, "listings")
	clearTable(suite.service, "assets")
}

func (suite *FeeRateTestSuite) TestDefaultFeeRate() {
	rec := suite.request(http.MethodGet, "/v2/feerate", "", nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	feeRateResponse := &controllers.FeeRateResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(feeRateResponse))
	assert.Equal(suite.T(), int64(common.DefaultFeeRate), feeRateResponse.Rate)
}

func (suite *FeeRateTestSuite) TestSetFeeRateAppliesToNextSale() {
	rec := suite.request(http.MethodPut, "/v2/admin/feerate", "", &ExpectedSetFeeRateRequestBody{Rate: 100})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// a sale settled after the change uses the new 10% rate
	asset := suite.mintAssetReq("ipfs://QmRepriced", 0, suite.aliceToken)
	rec = suite.listAssetReq(asset.ID, 1000, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.depositReq(1000, suite.bobToken)
	rec = suite.buyReq(asset.ID, 1000, suite.bobToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	aliceBalance := suite.balanceReq(suite.aliceToken)
	assert.Equal(suite.T(), int64(900), aliceBalance.Balance)
}

func (suite *FeeRateTestSuite) TestSetFeeRateOutOfRange() {
	rec := suite.request(http.MethodPut, "/v2/admin/feerate", "", &ExpectedSetFeeRateRequestBody{Rate: 1001})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.InvalidFeeRateError.Code, errorResponse.Code)
}

func TestFeeRateTestSuite(t *testing.T) {
	suite.Run(t, new(FeeRateTestSuite))
}
