package controllers

import (
	"net/http"
	"time"

	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/SteveTM-git/decentraart/lib/tokens"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// EventStreamController : EventStreamController struct
type EventStreamController struct {
	svc *service.MarketplaceService
}

type EventWrapper struct {
	Type  string `json:"type"`
	Event *Event `json:"event,omitempty"`
}

func NewEventStreamController(svc *service.MarketplaceService) *EventStreamController {
	return &EventStreamController{svc: svc}
}

// StreamEvents streams marketplace events to the client as they are committed
func (controller *EventStreamController) StreamEvents(c echo.Context) error {
	_, err := tokens.ParseToken(controller.svc.Config.JWTSecret, c.QueryParam("token"))
	if err != nil {
		return err
	}
	eventChan := make(chan models.Event)
	subId, err := controller.svc.EventPubSub.Subscribe(service.TopicAllEvents, eventChan)
	if err != nil {
		return err
	}
	upgrader := websocket.Upgrader{}
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	ticker := time.NewTicker(30 * time.Second)
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		controller.svc.EventPubSub.Unsubscribe(subId, service.TopicAllEvents)
		return err
	}
	defer ws.Close()

	//start listening for close messages
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, _, err := ws.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	//start with keepalive message
	err = ws.WriteJSON(&EventWrapper{Type: "keepalive"})
	if err != nil {
		controller.svc.Logger.Error(err)
		controller.svc.EventPubSub.Unsubscribe(subId, service.TopicAllEvents)
		return err
	}
SocketLoop:
	for {
		select {
		case <-done:
			break SocketLoop
		case <-ticker.C:
			err := ws.WriteJSON(&EventWrapper{Type: "keepalive"})
			if err != nil {
				controller.svc.Logger.Error(err)
				break SocketLoop
			}
		case event := <-eventChan:
			wrapped := newEvent(&event)
			err := ws.WriteJSON(&EventWrapper{
				Type:  "event",
				Event: &wrapped,
			})
			if err != nil {
				controller.svc.Logger.Error(err)
				break SocketLoop
			}
		}
	}
	controller.svc.EventPubSub.Unsubscribe(subId, service.TopicAllEvents)
	return nil
}
