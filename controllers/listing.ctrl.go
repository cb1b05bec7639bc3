package controllers

import (
	"net/http"
	"time"

	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// ListingController : Listing controller struct
type ListingController struct {
	svc *service.MarketplaceService
}

func NewListingController(svc *service.MarketplaceService) *ListingController {
	return &ListingController{svc: svc}
}

type Listing struct {
	AssetID   int64     `json:"asset_id"`
	SellerID  int64     `json:"seller_id"`
	Price     int64     `json:"price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type ListAssetRequestBody struct {
	Price int64 `json:"price"`
}

type GetListingsResponseBody struct {
	Listings []Listing `json:"listings"`
}

func newListing(listing *models.Listing) Listing {
	return Listing{
		AssetID:   listing.AssetID,
		SellerID:  listing.UserID,
		Price:     listing.Price,
		Active:    listing.Active,
		CreatedAt: listing.CreatedAt,
	}
}

// ListAsset godoc
// @Summary      List an asset for sale
// @Description  Puts an asset the caller owns up for sale at a fixed price. Listing an already listed asset overwrites the price.
// @Accept       json
// @Produce      json
// @Tags         Listing
// @Param        asset_id  path      int                   true  "Asset ID"
// @Param        listing   body      ListAssetRequestBody  True  "Listing"
// @Success      200       {object}  Listing
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      403       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/list [post]
// @Security     OAuth2Password
func (controller *ListingController) ListAsset(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body ListAssetRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load list request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid list request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	listing, err := controller.svc.ListAsset(c.Request().Context(), userID, assetID, body.Price)
	if err != nil {
		c.Logger().Errorf("Failed to list asset: user_id:%v asset_id:%v error:%v", userID, assetID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := newListing(listing)
	return c.JSON(http.StatusOK, &response)
}

// UnlistAsset godoc
// @Summary      Remove an asset from sale
// @Description  Deactivates the caller's active listing for the asset
// @Produce      json
// @Tags         Listing
// @Param        asset_id  path  int  true  "Asset ID"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/unlist [post]
// @Security     OAuth2Password
func (controller *ListingController) UnlistAsset(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.UnlistAsset(c.Request().Context(), userID, assetID)
	if err != nil {
		c.Logger().Errorf("Failed to unlist asset: user_id:%v asset_id:%v error:%v", userID, assetID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.NoContent(http.StatusOK)
}

// GetListing godoc
// @Summary      Retrieve a listing
// @Description  Returns the listing state of an asset. Never-listed assets read as inactive.
// @Produce      json
// @Tags         Listing
// @Param        asset_id  path      int  true  "Asset ID"
// @Success      200       {object}  Listing
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/listing [get]
// @Security     OAuth2Password
func (controller *ListingController) GetListing(c echo.Context) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	listing, err := controller.svc.FindListing(c.Request().Context(), assetID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := newListing(listing)
	return c.JSON(http.StatusOK, &response)
}

// GetListedAssets godoc
// @Summary      Retrieve assets for sale
// @Description  Returns all currently active listings
// @Produce      json
// @Tags         Listing
// @Success      200  {object}  GetListingsResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/listings [get]
func (controller *ListingController) GetListedAssets(c echo.Context) error {
	listings, err := controller.svc.ListedAssets(c.Request().Context())
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]Listing, len(listings))
	for i := range listings {
		response[i] = newListing(&listings[i])
	}
	return c.JSON(http.StatusOK, &GetListingsResponseBody{Listings: response})
}
