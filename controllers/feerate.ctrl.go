package controllers

import (
	"net/http"

	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// FeeRateController : Fee rate controller struct
type FeeRateController struct {
	svc *service.MarketplaceService
}

func NewFeeRateController(svc *service.MarketplaceService) *FeeRateController {
	return &FeeRateController{svc: svc}
}

type FeeRateResponseBody struct {
	// Rate is the marketplace fee in basis points of 1000
	Rate int64 `json:"rate"`
}

type SetFeeRateRequestBody struct {
	Rate int64 `json:"rate" validate:"gte=0"`
}

// GetFeeRate godoc
// @Summary      Retrieve the marketplace fee rate
// @Description  Returns the current marketplace fee in basis points of 1000
// @Produce      json
// @Tags         Marketplace
// @Success      200  {object}  FeeRateResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/feerate [get]
func (controller *FeeRateController) GetFeeRate(c echo.Context) error {
	rate, err := controller.svc.FeeRate(c.Request().Context())
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.JSON(http.StatusOK, &FeeRateResponseBody{Rate: rate})
}

// SetFeeRate godoc
// @Summary      Update the marketplace fee rate
// @Description  Updates the marketplace fee. Applies to sales settled after the change; in-flight settlements keep the rate they read.
// @Accept       json
// @Produce      json
// @Tags         Marketplace
// @Param        feerate  body      SetFeeRateRequestBody  True  "Fee rate"
// @Success      200      {object}  FeeRateResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v2/admin/feerate [put]
// @Security     OAuth2Password
func (controller *FeeRateController) SetFeeRate(c echo.Context) error {
	var body SetFeeRateRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load fee rate request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid fee rate request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err := controller.svc.SetFeeRate(c.Request().Context(), body.Rate)
	if err != nil {
		c.Logger().Errorf("Failed to set fee rate: rate:%v error:%v", body.Rate, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.JSON(http.StatusOK, &FeeRateResponseBody{Rate: body.Rate})
}
