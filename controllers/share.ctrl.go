package controllers

import (
	"fmt"
	"net/http"

	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

// ShareController : Share controller struct
type ShareController struct {
	svc *service.MarketplaceService
}

func NewShareController(svc *service.MarketplaceService) *ShareController {
	return &ShareController{svc: svc}
}

// QR godoc
// @Summary      Asset share QR code
// @Description  Returns a QR code PNG pointing at the asset's public page
// @Produce      png
// @Tags         Asset
// @Param        asset_id  path  int  true  "Asset ID"
// @Success      200
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/qr [get]
func (controller *ShareController) QR(c echo.Context) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	asset, err := controller.svc.FindAsset(c.Request().Context(), assetID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	url := fmt.Sprintf("%s/%d", controller.svc.Config.ShareBaseUrl, asset.ID)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300, stale-if-error=21600") // cache for 5 minutes or if error for 6 hours max
	return c.Blob(http.StatusOK, "image/png", png)
}
