package mq

import (
	"context"
	"encoding/json"
	"log"

	"kirana/live"
	"kirana/models"
	"kirana/rdx"
)

const eventsChannel = "store-events"

// Emit publishes an event to the store events channel. Failures are logged
// and swallowed; events are advisory and never block the request path.
func Emit(ctx context.Context, eventName string, content models.Index) {
	content.Method = eventName
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] marshal %s: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish %s: %v", eventName, err)
	}
}

// StartEventWorker relays published events to the live admin feed. Runs
// until the process exits.
func StartEventWorker(hub *live.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] listening for store events")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventWorker] bad payload: %v", err)
			continue
		}
		hub.Broadcast([]byte(msg.Payload))
	}
}
