// Package webhook fires an outbound HTTP POST for each subscribed cell among
// the changed cells its caller reports through Notify (cmd/sheetd reports
// only the cell a request sets, not its dependents), adapted from
// WebhookDispatcher.go: string sheet
// and cell ids become a (sheetID string, grid.Position) pair, and the
// payload carries a grid.Value instead of a *contracts.Cell.
package webhook

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"

	"github.com/berejant/gridsheet/internal/grid"
)

// WorkerCount is the number of concurrent senders draining the queue.
const WorkerCount = 5

// queueCapacity bounds how many pending deliveries Notify may buffer before
// callers start blocking; matches WebhookDispatcher.go's channel size.
const queueCapacity = 20

type sheetSubscriptions map[grid.Position]string

// Update is the payload posted to a subscribed webhook URL.
type Update struct {
	SheetID string `json:"sheet_id"`
	Cell    string `json:"cell"`
	Text    string `json:"text"`
	Value   string `json:"value"`
}

type sendCommand struct {
	url    string
	update Update
}

// Dispatcher fans out cell-value-changed notifications to per-cell webhook
// URLs over a fixed worker pool, grounded on WebhookDispatcher.go.
type Dispatcher struct {
	queue         chan sendCommand
	subscriptions map[string]sheetSubscriptions
	client        *http.Client
}

// NewDispatcher builds a Dispatcher with no workers running yet; call Start.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		queue:         make(chan sendCommand, queueCapacity),
		subscriptions: make(map[string]sheetSubscriptions),
		client:        &http.Client{Timeout: 5 * time.Second},
	}
}

// Subscribe registers webhookURL to receive updates for sheetID/pos, or
// removes the subscription if webhookURL is empty.
func (d *Dispatcher) Subscribe(sheetID string, pos grid.Position, webhookURL string) {
	if _, ok := d.subscriptions[sheetID]; !ok {
		d.subscriptions[sheetID] = sheetSubscriptions{}
	}
	if webhookURL == "" {
		delete(d.subscriptions[sheetID], pos)
	} else {
		d.subscriptions[sheetID][pos] = webhookURL
	}
}

// SubscriptionURL returns the webhook URL registered for sheetID/pos, or ""
// if none is registered.
func (d *Dispatcher) SubscriptionURL(sheetID string, pos grid.Position) string {
	return d.subscriptions[sheetID][pos]
}

// Notify enqueues a delivery for every position in changed that has an
// active subscription. Non-blocking: the actual queueing happens on a
// separate goroutine so a slow or full queue never delays the caller's
// SetCell.
func (d *Dispatcher) Notify(sheetID string, changed map[grid.Position]grid.Value, text func(grid.Position) string) {
	subs, ok := d.subscriptions[sheetID]
	if !ok || len(subs) == 0 {
		return
	}
	go d.enqueue(sheetID, subs, changed, text)
}

func (d *Dispatcher) enqueue(sheetID string, subs sheetSubscriptions, changed map[grid.Position]grid.Value, text func(grid.Position) string) {
	for pos, value := range changed {
		url, ok := subs[pos]
		if !ok {
			continue
		}
		d.queue <- sendCommand{
			url: url,
			update: Update{
				SheetID: sheetID,
				Cell:    pos.String(),
				Text:    text(pos),
				Value:   value.String(),
			},
		}
	}
}

// Start launches WorkerCount goroutines draining the delivery queue.
func (d *Dispatcher) Start() {
	for i := 0; i < WorkerCount; i++ {
		go d.runWorker()
	}
}

// Close stops accepting new deliveries and lets workers drain the queue.
func (d *Dispatcher) Close() {
	close(d.queue)
}

func (d *Dispatcher) runWorker() {
	for command := range d.queue {
		payload, err := json.Marshal(command.update)
		if err != nil {
			fmt.Printf("webhook: marshal error: %s\n", err)
			continue
		}

		resp, err := d.client.Post(command.url, "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Printf("webhook: send error: %s\n", err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			fmt.Printf("webhook: unexpected response status: %s\n", resp.Status)
		}
	}
}
