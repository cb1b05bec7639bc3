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

type MintTestSuite struct {
	TestSuite
	service    *service.MarketplaceService
	aliceToken string
}

func (suite *MintTestSuite) SetupSuite() {
	svc, err := MarketplaceTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.service = svc
	suite.aliceToken = userTokens[0]
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.Use(tokens.Middleware(suite.service.Config.JWTSecret))
	assetCtrl := controllers.NewAssetController(suite.service)
	suite.echo.POST("/v2/assets", assetCtrl.MintAsset)
	suite.echo.GET("/v2/assets/:asset_id", assetCtrl.GetAsset)
	suite.echo.GET("/v2/assets/mine", assetCtrl.GetMyAssets)
	suite.echo.GET("/v2/assets/:asset_id/events", controllers.NewEventController(suite.service).GetAssetEvents)
}

func (suite *MintTestSuite) TearDownTest() {
	clearTable(suite.service, "events")
	clearTable(suite.service, "assets")
}

func (suite *MintTestSuite) TestMintAsset() {
	aliceId := getUserIdFromToken(suite.aliceToken)

	asset := suite.mintAssetReq("ipfs://QmTestArtwork", 50, suite.aliceToken)
	assert.Equal(suite.T(), aliceId, asset.OwnerID)
	assert.Equal(suite.T(), aliceId, asset.CreatorID)
	assert.Equal(suite.T(), int64(50), asset.RoyaltyRate)
	assert.Equal(suite.T(), "ipfs://QmTestArtwork", asset.MetadataURI)
	assert.Positive(suite.T(), asset.ID)

	// ids are monotonic
	second := suite.mintAssetReq("ipfs://QmTestArtwork2", 0, suite.aliceToken)
	assert.Equal(suite.T(), asset.ID+1, second.ID)

	// the mint shows up in the asset history
	rec := suite.request(http.MethodGet, fmt.Sprintf("/v2/assets/%d/events", asset.ID), suite.aliceToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	eventsResponse := &controllers.GetEventsResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(eventsResponse))
	assert.Len(suite.T(), eventsResponse.Events, 1)
	assert.Equal(suite.T(), "asset_minted", eventsResponse.Events[0].Kind)
	assert.Equal(suite.T(), aliceId, eventsResponse.Events[0].ActorID)

	// both assets are owned by alice
	rec = suite.request(http.MethodGet, "/v2/assets/mine", suite.aliceToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assetsResponse := &controllers.GetAssetsResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(assetsResponse))
	assert.Len(suite.T(), assetsResponse.Assets, 2)
}

func (suite *MintTestSuite) TestMintWithInvalidRoyalty() {
	rec := suite.request(http.MethodPost, "/v2/assets", suite.aliceToken, &ExpectedMintAssetRequestBody{
		MetadataURI: "ipfs://QmTestArtwork",
		RoyaltyRate: 1001,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.InvalidRoyaltyError.Code, errorResponse.Code)
}

func (suite *MintTestSuite) TestGetUnknownAsset() {
	rec := suite.request(http.MethodGet, "/v2/assets/99999999", suite.aliceToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	errorResponse := checkErrResponse(&suite.TestSuite, rec)
	assert.Equal(suite.T(), responses.UnknownAssetError.Code, errorResponse.Code)
}

func TestMintTestSuite(t *testing.T) {
	suite.Run(t, new(MintTestSuite))
}
