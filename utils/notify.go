package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sudhamrit/grocery-api/models"
)

// WebhookNotifier posts order events to an external endpoint. Delivery is
// best-effort: failures are logged and never bubble into the order flow.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

// NewWebhookNotifier returns a notifier posting to url. An empty url
// disables notification entirely.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

func (n *WebhookNotifier) OrderCreated(order models.Order) {
	n.post("order.created", order)
}

func (n *WebhookNotifier) OrderStatusChanged(order models.Order) {
	n.post("order.status_changed", order)
}

func (n *WebhookNotifier) post(event string, order models.Order) {
	if n == nil || n.url == "" {
		return
	}

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]any{
			"event": event,
			"order": order,
		}).
		Post(n.url)
	if err != nil {
		log.Printf("Webhook %s for order %d failed: %v", event, order.ID, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Webhook %s for order %d returned status %d", event, order.ID, resp.StatusCode())
	}
}
