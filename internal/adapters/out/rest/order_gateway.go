// Package rest implements the order-backend gateway over its HTTP API.
// The backend owns persistence and query semantics; this adapter only moves
// JSON and maps wire rows to domain aggregates.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// requestIDHeader carries the correlation id so backend logs can be joined
// with the event stream.
const requestIDHeader = "X-Request-Id"

// OrderGateway implements ports.OrderGateway against the order backend's REST
// API. All failures, transport or non-2xx alike, surface as errs.FetchError.
type OrderGateway struct {
	baseURL string
	client  *http.Client
}

// NewOrderGateway creates a gateway for the backend at baseURL. A nil client
// gets a default one with a sane timeout.
func NewOrderGateway(baseURL string, client *http.Client) (*OrderGateway, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &OrderGateway{
		baseURL: baseURL,
		client:  client,
	}, nil
}

// TodayOrders fetches the snapshot of today's orders for the session.
func (g *OrderGateway) TodayOrders(ctx context.Context, session kernel.Session) ([]*order.Order, error) {
	endpoint := fmt.Sprintf("GET /orders/today/%s/%s", session.RestaurantID(), session.LocationID())
	requestURL := fmt.Sprintf("%s/orders/today/%s/%s",
		g.baseURL, url.PathEscape(session.RestaurantID()), url.PathEscape(session.LocationID()))

	var rows []orderDTO
	if err := g.getJSON(ctx, endpoint, requestURL, kernel.CorrelationID{}, &rows); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain(kernel.CorrelationID{})
		if err != nil {
			return nil, errs.NewFetchError(endpoint, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Order fetches one order in full.
func (g *OrderGateway) Order(ctx context.Context, session kernel.Session, orderID string, correlationID kernel.CorrelationID) (*order.Order, error) {
	endpoint := fmt.Sprintf("GET /orders/%s", orderID)
	requestURL := fmt.Sprintf("%s/orders/%s?restaurantId=%s&locationId=%s",
		g.baseURL, url.PathEscape(orderID),
		url.QueryEscape(session.RestaurantID()), url.QueryEscape(session.LocationID()))

	var row orderDTO
	if err := g.getJSON(ctx, endpoint, requestURL, correlationID, &row); err != nil {
		return nil, err
	}

	o, err := row.toDomain(correlationID)
	if err != nil {
		return nil, errs.NewFetchError(endpoint, err)
	}
	return o, nil
}

// ChangeOrderStatus issues the authoritative order-level status write.
func (g *OrderGateway) ChangeOrderStatus(ctx context.Context, orderID string, status order.Status, correlationID kernel.CorrelationID) error {
	return g.postJSON(ctx, "POST /order-status", g.baseURL+"/order-status", correlationID,
		changeOrderStatusRequest{
			OrderID: orderID,
			Status:  status.String(),
		})
}

// ChangeOrderItemStatus issues the authoritative item-level status write.
func (g *OrderGateway) ChangeOrderItemStatus(ctx context.Context, orderID, itemID string, status ports.ItemStatus, correlationID kernel.CorrelationID) error {
	return g.postJSON(ctx, "POST /order-item-status", g.baseURL+"/order-item-status", correlationID,
		changeOrderItemStatusRequest{
			OrderID: orderID,
			ItemID:  itemID,
			Status:  string(status),
		})
}

func (g *OrderGateway) getJSON(ctx context.Context, endpoint, requestURL string, correlationID kernel.CorrelationID, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errs.NewFetchError(endpoint, err)
	}
	setRequestID(req, correlationID)

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.NewFetchError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewFetchError(endpoint, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return errs.NewFetchError(endpoint, err)
	}
	return nil
}

func (g *OrderGateway) postJSON(ctx context.Context, endpoint, requestURL string, correlationID kernel.CorrelationID, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errs.NewFetchError(endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(raw))
	if err != nil {
		return errs.NewFetchError(endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	setRequestID(req, correlationID)

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.NewFetchError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewFetchError(endpoint, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}

func setRequestID(req *http.Request, correlationID kernel.CorrelationID) {
	if !correlationID.IsZero() {
		req.Header.Set(requestIDHeader, correlationID.String())
	}
}
