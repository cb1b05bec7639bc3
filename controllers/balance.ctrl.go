package controllers

import (
	"net/http"
	"time"

	"github.com/SteveTM-git/decentraart/common"
	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// BalanceController : Balance controller struct
type BalanceController struct {
	svc *service.MarketplaceService
}

func NewBalanceController(svc *service.MarketplaceService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
	Escrow  int64 `json:"escrow"`
}

type TransactionEntryResponse struct {
	ID        int64     `json:"id"`
	AssetID   int64     `json:"asset_id,omitempty"`
	Amount    int64     `json:"amount"`
	EntryType string    `json:"entry_type"`
	CreatedAt time.Time `json:"created_at"`
}

type GetTransactionEntriesResponseBody struct {
	Entries []TransactionEntryResponse `json:"entries"`
}

type DepositRequestBody struct {
	Amount int64 `json:"amount"`
}

// Balance godoc
// @Summary      Retrieve balance
// @Description  Returns the caller's spendable balance and the amount held in escrow for pending offers
// @Produce      json
// @Tags         Account
// @Success      200  {object}  BalanceResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/balance [get]
// @Security     OAuth2Password
func (controller *BalanceController) Balance(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	balance, err := controller.svc.CurrentUserBalance(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("Failed to retrieve balance: user_id:%v error:%v", userID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	escrow, err := controller.svc.BalanceFor(c.Request().Context(), common.AccountTypeEscrow, userID)
	if err != nil {
		c.Logger().Errorf("Failed to retrieve escrow balance: user_id:%v error:%v", userID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.JSON(http.StatusOK, &BalanceResponse{Balance: balance, Escrow: escrow})
}

// GetTransactionEntries godoc
// @Summary      Retrieve ledger entries
// @Description  Returns the caller's transaction entries, newest first
// @Produce      json
// @Tags         Account
// @Success      200  {object}  GetTransactionEntriesResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/transactions [get]
// @Security     OAuth2Password
func (controller *BalanceController) GetTransactionEntries(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	entries, err := controller.svc.TransactionEntriesFor(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("Failed to retrieve transaction entries: user_id:%v error:%v", userID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]TransactionEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = TransactionEntryResponse{
			ID:        entry.ID,
			AssetID:   entry.AssetID,
			Amount:    entry.Amount,
			EntryType: entry.EntryType,
			CreatedAt: entry.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, &GetTransactionEntriesResponseBody{Entries: response})
}

// Deposit godoc
// @Summary      Deposit funds
// @Description  Credits the caller's balance with incoming funds
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        deposit  body  DepositRequestBody  True  "Deposit"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /v2/deposit [post]
// @Security     OAuth2Password
func (controller *BalanceController) Deposit(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	var body DepositRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load deposit request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid deposit request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	_, err := controller.svc.Deposit(c.Request().Context(), userID, body.Amount)
	if err != nil {
		c.Logger().Errorf("Failed deposit: user_id:%v error:%v", userID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.NoContent(http.StatusOK)
}
