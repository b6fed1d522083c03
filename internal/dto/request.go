package dto

import "time"

type PurchaseTicketsRequest struct {
	Quantity int `json:"quantity"`
}

type CreateEventRequest struct {
	Name        string    `json:"name"`
	Place       string    `json:"place"`
	StartDate   time.Time `json:"startDate"`
	TicketCount int       `json:"ticketCount"`
	TicketPrice float64   `json:"ticketPrice"`
}
