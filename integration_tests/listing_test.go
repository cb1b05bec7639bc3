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

type ListingTestSuite struct {
	TestSuite
	service    *service.MarketplaceService
	aliceToken string
	bobToken   string
}

func (suite *ListingTestSuite) SetupSuite() {
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
	suite.echo.Use(tokens.Middleware(suite.service.Config.JWTSecret))
	assetCtrl := controllers.NewAssetController(suite.service)
	listingCtrl := controllers.NewListingController(suite.service)
	suite.echo.POST("/v2/assets", assetCtrl.MintAsset)
	suite.echo.POST("/v2/assets/:asset_id/list", listingCtrl.ListAsset)
	suite.echo.POST("/v2/assets/:asset_id/unlist", listingCtrl.UnlistAsset)
	suite.echo.GET("/v2/assets/:asset_id/listing", listingCtrl.GetListing)
	suite.echo.GET("/v2/listings", listingCtrl.GetListedAssets)
}

func (suite *ListingTestSuite) TearDownTest() {
	clearTable(suite.service, "events")
	clearTable(suite.service, "listings")
	clearTable(suite.service, "assets")
}

func (suite *ListingTestSuite) TestListAndUnlist() {
	asset := suite.mintAssetReq("ipfs://QmListMe", 0, suite.aliceToken)

	rec := suite.listAssetReq(asset.ID, 1000, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	listing := &controllers.Listing{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(listing))
	assert.True(suite.T(), listing.Active)
	assert.Equal(suite.T(), int64(1000), listing.Price)

	// listing again overwrites the price, no error
	rec = suite.listAssetReq(asset.ID, 2000, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	listing = &controllers.Listing{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(listing))
	assert.Equal(suite.T(), int64(2000), listing.Price)

	// shows up in the marketplace browse view
	rec = suite.request(http.MethodGet, "/v2/listings", suite.bobToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	listingsResponse := &controllers.GetListingsResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(listingsResponse))
	assert.Len(suite.T(), listingsResponse.Listings, 1)

	rec = suite.unlistAssetReq(asset.ID, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// a second unlist fails, the asset is no longer listed
	rec = suite.unlistAssetReq(asset.ID, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.NotListedError.Code, errorResponse.Code)
}

func (suite *ListingTestSuite) TestListNotOwned() {
	asset := suite.mintAssetReq("ipfs://QmNotYours", 0, suite.aliceToken)

	rec := suite.listAssetReq(asset.ID, 1000, suite.bobToken)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.NotOwnerError.Code, errorResponse.Code)
}

func (suite *ListingTestSuite) TestListInvalidPrice() {
	asset := suite.mintAssetReq("ipfs://QmFree", 0, suite.aliceToken)

	for _, price := range []int64{0, -5} {
		rec := suite.request(http.MethodPost, fmt.Sprintf("/v2/assets/%d/list", asset.ID), suite.aliceToken, &ExpectedListAssetRequestBody{Price: price})
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
		errorResponse := checkErrResponse(&suite.TestSuite, rec)
		assert.Equal(suite.T(), responses.InvalidPriceError.Code, errorResponse.Code)
	}
}

func (suite *ListingTestSuite) TestNeverListedReadsInactive() {
	asset := suite.mintAssetReq("ipfs://QmQuiet", 0, suite.aliceToken)

	rec := suite.request(http.MethodGet, fmt.Sprintf("/v2/assets/%d/listing", asset.ID), suite.aliceToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	listing := &controllers.Listing{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(listing))
	assert.False(suite.T(), listing.Active)
}

func TestListingTestSuite(t *testing.T) {
	suite.Run(t, new(ListingTestSuite))
}
