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

// EventController : Event controller struct
type EventController struct {
	svc *service.MarketplaceService
}

func NewEventController(svc *service.MarketplaceService) *EventController {
	return &EventController{svc: svc}
}

type Event struct {
	ID             int64     `json:"id"`
	Kind           string    `json:"kind"`
	AssetID        int64     `json:"asset_id,omitempty"`
	ActorID        int64     `json:"actor_id"`
	CounterpartyID int64     `json:"counterparty_id,omitempty"`
	Amount         int64     `json:"amount,omitempty"`
	MetadataURI    string    `json:"metadata_uri,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type GetEventsResponseBody struct {
	Events []Event `json:"events"`
}

func newEvent(event *models.Event) Event {
	return Event{
		ID:             event.ID,
		Kind:           event.Kind,
		AssetID:        event.AssetID,
		ActorID:        event.ActorID,
		CounterpartyID: event.CounterpartyID,
		Amount:         event.Amount,
		MetadataURI:    event.MetadataURI,
		CreatedAt:      event.CreatedAt,
	}
}

// GetAssetEvents godoc
// @Summary      Retrieve asset history
// @Description  Returns every event recorded for an asset, oldest first
// @Produce      json
// @Tags         Event
// @Param        asset_id  path      int  true  "Asset ID"
// @Success      200       {object}  GetEventsResponseBody
// @Failure      404       {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id}/events [get]
// @Security     OAuth2Password
func (controller *EventController) GetAssetEvents(c echo.Context) error {
	assetID, err := assetIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	events, err := controller.svc.EventsForAsset(c.Request().Context(), assetID)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]Event, len(events))
	for i := range events {
		response[i] = newEvent(&events[i])
	}
	return c.JSON(http.StatusOK, &GetEventsResponseBody{Events: response})
}

// GetAllEvents godoc
// @Summary      Retrieve the marketplace log
// @Description  Returns marketplace events across all assets in ledger order, paginated with limit and offset
// @Produce      json
// @Tags         Event
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  GetEventsResponseBody
// @Failure      500     {object}  responses.ErrorResponse
// @Router       /v2/events [get]
// @Security     OAuth2Password
func (controller *EventController) GetAllEvents(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	events, err := controller.svc.AllEvents(c.Request().Context(), limit, offset)
	if err != nil {
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	response := make([]Event, len(events))
	for i := range events {
		response[i] = newEvent(&events[i])
	}
	return c.JSON(http.StatusOK, &GetEventsResponseBody{Events: response})
}
