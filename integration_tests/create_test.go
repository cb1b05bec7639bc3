package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"testing"

	"github.com/SteveTM-git/decentraart/controllers"
	"github.com/SteveTM-git/decentraart/lib"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CreateUserTestSuite struct {
	TestSuite
	service *service.MarketplaceService
}

func (suite *CreateUserTestSuite) SetupSuite() {
	svc, err := MarketplaceTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	e := echo.New()

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	suite.echo.POST("/v2/users", controllers.NewCreateUserController(suite.service).CreateUser)
	suite.echo.POST("/v2/auth", controllers.NewAuthController(suite.service).Auth)
}

func (suite *CreateUserTestSuite) TestCreateUserAndAuth() {
	rec := suite.request(http.MethodPost, "/v2/users", "", &ExpectedCreateUserRequestBody{})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	created := &ExpectedCreateUserResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(created))
	assert.NotEmpty(suite.T(), created.Login)
	assert.NotEmpty(suite.T(), created.Password)

	rec = suite.request(http.MethodPost, "/v2/auth", "", &ExpectedAuthRequestBody{
		Login:    created.Login,
		Password: created.Password,
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	authResponse := &ExpectedAuthResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(authResponse))
	assert.NotEmpty(suite.T(), authResponse.AccessToken)
	assert.NotEmpty(suite.T(), authResponse.RefreshToken)

	// a fresh access token from the refresh token
	rec = suite.request(http.MethodPost, "/v2/auth", "", &ExpectedAuthRequestBody{
		RefreshToken: authResponse.RefreshToken,
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *CreateUserTestSuite) TestAuthWithBadCredentials() {
	rec := suite.request(http.MethodPost, "/v2/auth", "", &ExpectedAuthRequestBody{
		Login:    "nobody",
		Password: "wrong",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *CreateUserTestSuite) TestDeactivatedUserCannotAuth() {
	rec := suite.request(http.MethodPost, "/v2/users", "", &ExpectedCreateUserRequestBody{})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	created := &ExpectedCreateUserResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(created))

	user, err := suite.service.FindUserByLogin(context.Background(), created.Login)
	assert.NoError(suite.T(), err)
	_, err = suite.service.UpdateUser(context.Background(), user.ID, true)
	assert.NoError(suite.T(), err)

	rec = suite.request(http.MethodPost, "/v2/auth", "", &ExpectedAuthRequestBody{
		Login:    created.Login,
		Password: created.Password,
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestCreateUserTestSuite(t *testing.T) {
	suite.Run(t, new(CreateUserTestSuite))
}
