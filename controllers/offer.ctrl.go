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

// OfferController : Offer controller struct
type OfferController struct {
	svc *service.MarketplaceService
}

func NewOfferController(svc *service.MarketplaceService) *OfferController {
	return &OfferController{svc: svc}
}

type Offer struct {
	AssetID    int64     `json:"asset_id"`
	Idx        int64     `json:"idx"`
	BidderID   int64     `json:"bidder_id"`
	Amount     int64     `json:"amount"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	ResolvedAt time.Time `json:"resolved_at,omitempty"`
}

type MakeOfferRequestBody struct {
	Amount int64 `json:"amount"`
}

type GetOffersResponseBody struct {
	Offers []Offer `json:"offers"`
}

func newOffer(offer *models.Offer) Offer {
	return Offer{
		AssetID:    offer.AssetID,
		Idx:        offer.Idx,
		BidderID:   offer.UserID,
		Amount:     offer.Amount,
		State:      offer.State,
		CreatedAt:  offer.CreatedAt,
		ResolvedAt: offer.ResolvedAt.Time,
	}
}

func offerIdxParam(c echo.Context) (int64, error) {
	idx, err := strconv.ParseInt(c.Param("offer_idx"), 10, 64)
	if err != nil || idx < 0 {
		return 0, responses.BadArgumentsError
	}
	return idx, nil
}

// MakeOffer godoc
// @Summary      Make an offer
// @Description  Places an offer on an asset and escrows the offered amount from the caller's balance until the offer is resolved
// @Accept       json
// @Produce      json
// @Tags         Offer
// @Param        asset_id  path      int                   true  "Asset ID"
// @Param        offer     body      MakeOfferRequestBody  True  "Offer"
// @Success      200       {object}  Offer
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/offers [post]
// @Security     OAuth2Password
func (controller *OfferController) MakeOffer(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body MakeOfferRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load offer request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid offer request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	offer, err := controller.svc.MakeOffer(c.Request().Context(), userID, assetID, body.Amount)
	if err != nil {
		c.Logger().Errorf("Failed to make offer: user_id:%v asset_id:%v error:%v", userID, assetID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := newOffer(offer)
	return c.JSON(http.StatusOK, &response)
}

// AcceptOffer godoc
// @Summary      Accept an offer
// @Description  Accepts a pending offer on an asset the caller owns. The escrowed amount settles atomically into fee, royalty and seller proceeds and ownership moves to the bidder.
// @Produce      json
// @Tags         Offer
// @Param        asset_id   path  int  true  "Asset ID"
// @Param        offer_idx  path  int  true  "Offer index"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/offers/{offer_idx}/accept [post]
// @Security     OAuth2Password
func (controller *OfferController) AcceptOffer(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	offerIdx, err := offerIdxParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.AcceptOffer(c.Request().Context(), userID, assetID, offerIdx)
	if err != nil {
		c.Logger().Errorf("Failed to accept offer: user_id:%v asset_id:%v offer_idx:%v error:%v", userID, assetID, offerIdx, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.NoContent(http.StatusOK)
}

// CancelOffer godoc
// @Summary      Cancel an offer
// @Description  Cancels the caller's pending offer and releases the escrowed amount back to their balance
// @Produce      json
// @Tags         Offer
// @Param        asset_id   path  int  true  "Asset ID"
// @Param        offer_idx  path  int  true  "Offer index"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/offers/{offer_idx}/cancel [post]
// @Security     OAuth2Password
func (controller *OfferController) CancelOffer(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	offerIdx, err := offerIdxParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.CancelOffer(c.Request().Context(), userID, assetID, offerIdx)
	if err != nil {
		c.Logger().Errorf("Failed to cancel offer: user_id:%v asset_id:%v offer_idx:%v error:%v", userID, assetID, offerIdx, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.NoContent(http.StatusOK)
}

// GetOffers godoc
// @Summary      Retrieve offers
// @Description  Returns all offers ever made on an asset, in submission order. Resolved offers keep their index.
// @Produce      json
// @Tags         Offer
// @Param        asset_id  path      int  true  "Asset ID"
// @Success      200       {object}  GetOffersResponseBody
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/offers [get]
// @Security     OAuth2Password
func (controller *OfferController) GetOffers(c echo.Context) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	offers, err := controller.svc.OffersFor(c.Request().Context(), assetID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]Offer, len(offers))
	for i := range offers {
		response[i] = newOffer(&offers[i])
	}
	return c.JSON(http.StatusOK, &GetOffersResponseBody{Offers: response})
}
