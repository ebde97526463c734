package http

import (
	"time"

	"orderboard/internal/core/domain/model/order"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse is the wire representation of an order on the board.
type OrderResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Status      string              `json:"status"`
	StartedAt   time.Time           `json:"startedAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	TotalPrice  int                 `json:"totalPrice"`
	Customer    CustomerResponse    `json:"customer"`
	Origin      OriginResponse      `json:"origin"`
	Items       []OrderItemResponse `json:"items"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type OriginResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrderItemResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       int        `json:"price"`
	StationTags []string   `json:"stationTags"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ChangeStatusRequest carries the target status of a transition request,
// order-level or item-level.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ID:          item.ID(),
			Name:        item.Name(),
			Price:       item.PriceCents(),
			StationTags: item.StationTags(),
			StartedAt:   item.StartedAt(),
			CompletedAt: item.CompletedAt(),
		})
	}

	return OrderResponse{
		ID:          o.ID(),
		Code:        o.Code(),
		Status:      o.Status().String(),
		StartedAt:   o.StartedAt(),
		CompletedAt: o.CompletedAt(),
		TotalPrice:  o.TotalPriceCents(),
		Customer: CustomerResponse{
			Name:  o.Customer().Name,
			Phone: o.Customer().Phone,
		},
		Origin: OriginResponse{
			ID:   o.Origin().ID,
			Name: o.Origin().Name,
		},
		Items: items,
	}
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}
	return responses
}
