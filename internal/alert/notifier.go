// FilePath: internal/alert/notifier.go
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hydrosense/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Notifier delivers one threshold-breach alert through one channel. New
// channels (email, SMS) implement this interface; the evaluator never
// changes.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, userID string, reading *models.SensorReading, violation Violation) error
}

// LogNotifier writes the alert to the service log. This is the channel the
// dashboard ships with by default.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Name() string {
	return "log"
}

func (n *LogNotifier) Notify(_ context.Context, userID string, reading *models.SensorReading, violation Violation) error {
	nuts.L.Infof("[Alert] Temperature alert for user %s: %.2f°C %s threshold %.2f°C (device %s)",
		userID, reading.Temperature, violation.Kind, violation.Threshold, reading.DeviceID)
	return nil
}

// WebhookNotifier POSTs the alert to a configured endpoint.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{client: client, url: url}
}

func (n *WebhookNotifier) Name() string {
	return "webhook"
}

func (n *WebhookNotifier) Notify(ctx context.Context, userID string, reading *models.SensorReading, violation Violation) error {
	payload := map[string]any{
		"user_id":     userID,
		"reading_id":  reading.ID,
		"device_id":   reading.DeviceID,
		"temperature": reading.Temperature,
		"kind":        violation.Kind,
		"threshold":   violation.Threshold,
		"recorded_at": reading.CreatedAt,
	}

	resp, err := n.client.R().SetContext(ctx).SetBody(payload).Post(n.url)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	return nil
}

// Dispatcher fans one violation out to every configured notifier. Delivery
// failures are logged and emitted as events; they never propagate to the
// write path that triggered the alert.
type Dispatcher struct {
	notifiers []Notifier
	events    *nuts.EventEmitter
}

func NewDispatcher(notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		events:    nuts.NewEventEmitter(),
	}
}

// Dispatch sends the violation through each notifier in turn.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, reading *models.SensorReading, violation Violation) {
	for _, notifier := range d.notifiers {
		if err := notifier.Notify(ctx, userID, reading, violation); err != nil {
			nuts.L.Errorf("[Alert] %s notifier failed for reading %s: %v", notifier.Name(), reading.ID, err)
			d.events.Emit("alert.delivery_failed", notifier.Name())
			continue
		}
		d.events.Emit("alert.sent", notifier.Name())
	}
}

// OnAlert registers a callback for alert lifecycle events
// ("alert.sent", "alert.delivery_failed"). The argument is the channel name.
func (d *Dispatcher) OnAlert(event string, handler func(channel string)) {
	d.events.On(event, "alert_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if channel, ok := args[0].(string); ok {
				handler(channel)
			}
		}
	})
}
