package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/SteveTM-git/decentraart/db/models"
	"github.com/uptrace/bun"
)

// TopicAllEvents is the pubsub topic every committed event is fanned out
// on, next to its per-kind topic.
const TopicAllEvents = "events"

// appendEvent writes the event inside the caller's transaction so the log
// commits or rolls back together with the mutation it describes.
func appendEvent(ctx context.Context, tx bun.Tx, event *models.Event) error {
	_, err := tx.NewInsert().Model(event).Exec(ctx)
	return err
}

// publishEvent fans a committed event out to in-process subscribers
// (websocket streams, the webhook routine, the RabbitMQ publisher).
func (svc *MarketplaceService) publishEvent(event models.Event) {
	svc.EventPubSub.Publish(TopicAllEvents, event)
	svc.EventPubSub.Publish(event.Kind, event)
}

func (svc *MarketplaceService) EventsForAsset(ctx context.Context, assetID int64) ([]models.Event, error) {
	events := []models.Event{}
	err := svc.DB.NewSelect().Model(&events).Where("asset_id = ?", assetID).OrderExpr("id ASC").Scan(ctx)
	return events, err
}

func (svc *MarketplaceService) AllEvents(ctx context.Context, limit int, offset int) ([]models.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	events := []models.Event{}
	err := svc.DB.NewSelect().Model(&events).OrderExpr("id ASC").Limit(limit).Offset(offset).Scan(ctx)
	return events, err
}

// SubscribeToEvents is the subscription hook handed to the RabbitMQ
// publisher loop.
func (svc *MarketplaceService) SubscribeToEvents() (chan models.Event, error) {
	ch := make(chan models.Event)
	_, err := svc.EventPubSub.Subscribe(TopicAllEvents, ch)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (svc *MarketplaceService) EncodeEvent(ctx context.Context, w io.Writer, event models.Event) error {
	return json.NewEncoder(w).Encode(event)
}
