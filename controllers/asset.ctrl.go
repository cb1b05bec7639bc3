package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// AssetController : Asset controller struct
type AssetController struct {
	svc *service.MarketplaceService
}

func NewAssetController(svc *service.MarketplaceService) *AssetController {
	return &AssetController{svc: svc}
}

type Asset struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	CreatorID   int64     `json:"creator_id"`
	RoyaltyRate int64     `json:"royalty_rate"`
	MetadataURI string    `json:"metadata_uri"`
	CreatedAt   time.Time `json:"created_at"`
}

type MintAssetRequestBody struct {
	MetadataURI string `json:"metadata_uri" validate:"required"`
	RoyaltyRate int64  `json:"royalty_rate" validate:"gte=0"`
}

type GetAssetsResponseBody struct {
	Assets []Asset `json:"assets"`
}

type AssetCountResponseBody struct {
	Count int `json:"count"`
}

func newAsset(asset *models.Asset) Asset {
	return Asset{
		ID:          asset.ID,
		OwnerID:     asset.OwnerID,
		CreatorID:   asset.CreatorID,
		RoyaltyRate: asset.RoyaltyRate,
		MetadataURI: asset.MetadataURI,
		CreatedAt:   asset.CreatedAt,
	}
}

func assetIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("asset_id"), 10, 64)
	if err != nil || id < 1 {
		return 0, responses.BadArgumentsError
	}
	return id, nil
}

// MintAsset godoc
// @Summary      Mint an asset
// @Description  Creates a new asset owned and created by the caller
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        asset  body      MintAssetRequestBody  True  "Mint Asset"
// @Success      200    {object}  Asset
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/assets [post]
// @Security     OAuth2Password
func (controller *AssetController) MintAsset(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	var body MintAssetRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load mint request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid mint request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	asset, err := controller.svc.MintAsset(c.Request().Context(), userID, body.MetadataURI, body.RoyaltyRate)
	if err != nil {
		c.Logger().Errorf("Failed to mint asset: user_id:%v error:%v", userID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := newAsset(asset)
	return c.JSON(http.StatusOK, &response)
}

// GetAsset godoc
// @Summary      Retrieve an asset
// @Description  Returns a single asset by id
// @Produce      json
// @Tags         Asset
// @Param        asset_id  path      int  true  "Asset ID"
// @Success      200       {object}  Asset
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id} [get]
// @Security     OAuth2Password
func (controller *AssetController) GetAsset(c echo.Context) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	asset, err := controller.svc.FindAsset(c.Request().Context(), assetID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := newAsset(asset)
	return c.JSON(http.StatusOK, &response)
}

// GetMyAssets godoc
// @Summary      Retrieve own assets
// @Description  Returns all assets currently owned by the caller
// @Produce      json
// @Tags         Asset
// @Success      200  {object}  GetAssetsResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/mine [get]
// @Security     OAuth2Password
func (controller *AssetController) GetMyAssets(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	assets, err := controller.svc.AssetsByOwner(c.Request().Context(), userID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]Asset, len(assets))
	for i := range assets {
		response[i] = newAsset(&assets[i])
	}
	return c.JSON(http.StatusOK, &GetAssetsResponseBody{Assets: response})
}

// GetAssetCount godoc
// @Summary      Count assets
// @Description  Returns the total number of minted assets
// @Produce      json
// @Tags         Asset
// @Success      200  {object}  AssetCountResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/count [get]
func (controller *AssetController) GetAssetCount(c echo.Context) error {
	count, err := controller.svc.TotalAssets(c.Request().Context())
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.JSON(http.StatusOK, &AssetCountResponseBody{Count: count})
}
