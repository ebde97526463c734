// Package printing forwards ticket print jobs to the physical-printer
// collaborator and raises the "order received" alert. Both are fire-and-forget
// side effects; the board never blocks on them.
package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Dispatcher implements ports.PrintDispatcher against the print service's
// HTTP API. The job payload is opaque to the board; the print service owns
// its rendering.
type Dispatcher struct {
	baseURL string
	client  *http.Client
}

// NewDispatcher creates a dispatcher for the print service at baseURL.
func NewDispatcher(baseURL string, client *http.Client) (*Dispatcher, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Dispatcher{
		baseURL: baseURL,
		client:  client,
	}, nil
}

type printJobDTO struct {
	Order      printOrderDTO        `json:"order"`
	Printer    ports.PrinterInfo    `json:"printer"`
	Restaurant ports.RestaurantInfo `json:"restaurant"`
	Source     string               `json:"source"`
}

type printOrderDTO struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	TotalPrice int            `json:"totalPrice"`
	Customer   string         `json:"customerName"`
	Items      []printItemDTO `json:"items"`
}

type printItemDTO struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Dispatch posts the job to the print service.
func (d *Dispatcher) Dispatch(ctx context.Context, job ports.PrintJob) error {
	if job.Order == nil {
		return errs.NewValueIsRequiredError("order")
	}

	items := make([]printItemDTO, 0, len(job.Order.Items()))
	for _, item := range job.Order.Items() {
		items = append(items, printItemDTO{Name: item.Name(), Price: item.PriceCents()})
	}

	body := printJobDTO{
		Order: printOrderDTO{
			ID:         job.Order.ID(),
			Code:       job.Order.Code(),
			TotalPrice: job.Order.TotalPriceCents(),
			Customer:   job.Order.Customer().Name,
			Items:      items,
		},
		Printer:    job.Printer,
		Restaurant: job.Restaurant,
		Source:     job.Source,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return errs.NewFetchError("POST /print-order", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/print-order", bytes.NewReader(raw))
	if err != nil {
		return errs.NewFetchError("POST /print-order", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return errs.NewFetchError("POST /print-order", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewFetchError("POST /print-order", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}

// LogAlerter implements ports.Alerter by logging the notification. Headless
// deployments have no speaker; the log line is what operators watch.
type LogAlerter struct {
	logger *slog.Logger
}

// NewLogAlerter creates an alerter writing to the given logger.
func NewLogAlerter(logger *slog.Logger) *LogAlerter {
	return &LogAlerter{logger: logger.With("component", "alerter")}
}

// Alert logs the "order received" notification.
func (a *LogAlerter) Alert(ctx context.Context, orderID string) {
	a.logger.InfoContext(ctx, "New order alert", "orderId", orderID)
}
