package rest

import (
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// orderDTO mirrors the backend's order representation on the wire.
type orderDTO struct {
	ID            string         `json:"id"`
	Code          string         `json:"code"`
	Status        string         `json:"status"`
	StartedAt     time.Time      `json:"startedAt"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty"`
	TotalPrice    int            `json:"totalPrice"`
	CorrelationID string         `json:"correlationId,omitempty"`
	Customer      customerDTO    `json:"customer"`
	Origin        originDTO      `json:"origin"`
	Items         []orderItemDTO `json:"items"`
}

type customerDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type originDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type orderItemDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       int        `json:"price"`
	StationTags []string   `json:"stationTags"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// The write bodies name the status field after the entity being transitioned
// (orderStatus, orderItemStatus); the backend rejects a bare "status".
type changeOrderStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"orderStatus"`
}

type changeOrderItemStatusRequest struct {
	OrderID string `json:"orderId"`
	ItemID  string `json:"itemId"`
	Status  string `json:"orderItemStatus"`
}

// toDomain restores the aggregate from wire data. The fallback correlation id
// is used when the backend row carries none; event payloads are often the only
// place the id is known.
func (d orderDTO) toDomain(fallback kernel.CorrelationID) (*order.Order, error) {
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	correlationID := fallback
	if d.CorrelationID != "" {
		parsed, err := kernel.CorrelationIDFromString(d.CorrelationID)
		if err == nil {
			correlationID = parsed
		}
	}

	items := make([]*order.Item, 0, len(d.Items))
	for _, itemDTO := range d.Items {
		item, err := order.RestoreItem(
			itemDTO.ID, itemDTO.Name, itemDTO.Price, itemDTO.StationTags,
			itemDTO.StartedAt, itemDTO.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		d.ID, d.Code, status,
		d.StartedAt, d.CompletedAt, d.TotalPrice,
		correlationID,
		order.Customer{Name: d.Customer.Name, Phone: d.Customer.Phone},
		order.Origin{ID: d.Origin.ID, Name: d.Origin.Name},
		items,
	)
}
