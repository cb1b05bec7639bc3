package controllers

import (
	"net/http"

	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// PurchaseController : Purchase controller struct
type PurchaseController struct {
	svc *service.MarketplaceService
}

func NewPurchaseController(svc *service.MarketplaceService) *PurchaseController {
	return &PurchaseController{svc: svc}
}

type PurchaseRequestBody struct {
	Payment int64 `json:"payment"`
}

// Purchase godoc
// @Summary      Buy a listed asset
// @Description  Buys the asset at its listed price. The payment must cover the price; the buyer is charged exactly the price and fee, royalty and seller proceeds settle atomically.
// @Accept       json
// @Produce      json
// @Tags         Purchase
// @Param        asset_id  path  int                  true  "Asset ID"
// @Param        purchase  body  PurchaseRequestBody  True  "Purchase"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/buy [post]
// @Security     OAuth2Password
func (controller *PurchaseController) Purchase(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body PurchaseRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load purchase request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid purchase request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.Purchase(c.Request().Context(), userID, assetID, body.Payment)
	if err != nil {
		c.Logger().Errorf("Failed purchase: user_id:%v asset_id:%v error:%v", userID, assetID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.NoContent(http.StatusOK)
}
