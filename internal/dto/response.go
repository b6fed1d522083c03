package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/kuritkaj/eventlook/internal/models"
	"github.com/kuritkaj/eventlook/internal/service"
)

type OrderResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TicketResponse struct {
	ID           uuid.UUID `json:"id"`
	TicketNumber string    `json:"ticketNumber"`
}

type PurchaseResponse struct {
	Order   OrderResponse    `json:"order"`
	Tickets []TicketResponse `json:"tickets"`
}

type EventResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Place            string    `json:"place"`
	StartDate        time.Time `json:"startDate"`
	TicketCount      int       `json:"ticketCount"`
	TicketPrice      float64   `json:"ticketPrice"`
	TicketsSold      int64     `json:"ticketsSold"`
	TicketsAvailable int64     `json:"ticketsAvailable"`
	CreatedAt        time.Time `json:"createdAt"`
}

type OrderDetailResponse struct {
	ID          uuid.UUID        `json:"id"`
	OrderNumber string           `json:"orderNumber"`
	EventID     uuid.UUID        `json:"eventId"`
	CreatedAt   time.Time        `json:"createdAt"`
	Tickets     []TicketResponse `json:"tickets"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToPurchaseResponse(result *service.PurchaseResult) PurchaseResponse {
	tickets := make([]TicketResponse, len(result.Tickets))
	for i, t := range result.Tickets {
		tickets[i] = TicketResponse{ID: t.ID, TicketNumber: t.TicketNumber}
	}
	return PurchaseResponse{
		Order: OrderResponse{
			ID:          result.Order.ID,
			OrderNumber: result.Order.OrderNumber,
			CreatedAt:   result.Order.CreatedAt,
		},
		Tickets: tickets,
	}
}

// ToEventResponse derives display availability, clamped at zero.
func ToEventResponse(e service.EventWithSold) EventResponse {
	available := int64(e.Event.TicketCount) - e.TicketsSold
	if available < 0 {
		available = 0
	}
	return EventResponse{
		ID:               e.Event.ID,
		Name:             e.Event.Name,
		Place:            e.Event.Place,
		StartDate:        e.Event.StartDate,
		TicketCount:      e.Event.TicketCount,
		TicketPrice:      e.Event.TicketPrice,
		TicketsSold:      e.TicketsSold,
		TicketsAvailable: available,
		CreatedAt:        e.Event.CreatedAt,
	}
}

func ToOrderDetailResponse(order *models.Order) OrderDetailResponse {
	tickets := make([]TicketResponse, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = TicketResponse{ID: t.ID, TicketNumber: t.TicketNumber}
	}
	return OrderDetailResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		EventID:     order.EventID,
		CreatedAt:   order.CreatedAt,
		Tickets:     tickets,
	}
}
