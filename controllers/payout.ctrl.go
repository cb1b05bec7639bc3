package controllers

import (
	"net/http"
	"time"

	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// PayoutController : Payout controller struct
type PayoutController struct {
	svc *service.MarketplaceService
}

func NewPayoutController(svc *service.MarketplaceService) *PayoutController {
	return &PayoutController{svc: svc}
}

type Payout struct {
	ExternalID  string    `json:"external_id"`
	Destination string    `json:"destination"`
	Amount      int64     `json:"amount"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	SettledAt   time.Time `json:"settled_at,omitempty"`
}

type RequestPayoutRequestBody struct {
	ExternalID  string `json:"external_id" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Amount      int64  `json:"amount"`
}

type GetPayoutsResponseBody struct {
	Payouts []Payout `json:"payouts"`
}

func newPayout(payout *models.Payout) Payout {
	return Payout{
		ExternalID:  payout.ExternalID,
		Destination: payout.Destination,
		Amount:      payout.Amount,
		State:       payout.State,
		CreatedAt:   payout.CreatedAt,
		SettledAt:   payout.SettledAt.Time,
	}
}

// RequestPayout godoc
// @Summary      Withdraw funds
// @Description  Withdraws funds from the caller's balance to an external destination. The external id is chosen by the caller and makes retries safe.
// @Accept       json
// @Produce      json
// @Tags         Payout
// @Param        payout  body      RequestPayoutRequestBody  True  "Payout"
// @Success      200     {object}  Payout
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      409     {object}  responses.ErrorResponse
// @Router       /v2/payouts [post]
// @Security     OAuth2Password
func (controller *PayoutController) RequestPayout(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	var body RequestPayoutRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load payout request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid payout request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payout, err := controller.svc.RequestPayout(c.Request().Context(), userID, body.ExternalID, body.Destination, body.Amount)
	if err != nil {
		c.Logger().Errorf("Failed payout: user_id:%v external_id:%v error:%v", userID, body.ExternalID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := newPayout(payout)
	return c.JSON(http.StatusOK, &response)
}

// GetPayout godoc
// @Summary      Retrieve a payout
// @Description  Returns a single payout by its external id
// @Produce      json
// @Tags         Payout
// @Param        external_id  path      string  true  "External ID"
// @Success      200          {object}  Payout
// @Failure      400          {object}  responses.ErrorResponse
// @Router       /v2/payouts/{external_id} [get]
// @Security     OAuth2Password
func (controller *PayoutController) GetPayout(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	payout, err := controller.svc.FindPayout(c.Request().Context(), userID, c.Param("external_id"))
	// Probably we did not find the payout
	if err != nil {
		c.Logger().Errorf("Invalid payout request user_id:%v external_id:%s", userID, c.Param("external_id"))
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	response := newPayout(payout)
	return c.JSON(http.StatusOK, &response)
}

// GetPayouts godoc
// @Summary      Retrieve payouts
// @Description  Returns the caller's payouts, newest first
// @Produce      json
// @Tags         Payout
// @Success      200  {object}  GetPayoutsResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/payouts [get]
// @Security     OAuth2Password
func (controller *PayoutController) GetPayouts(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	payouts, err := controller.svc.PayoutsFor(c.Request().Context(), userID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]Payout, len(payouts))
	for i := range payouts {
		response[i] = newPayout(&payouts[i])
	}
	return c.JSON(http.StatusOK, &GetPayoutsResponseBody{Payouts: response})
}
