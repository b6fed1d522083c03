package service

import (
	"fmt"
	"math/rand"
	"time"
)

// NumberGenerator produces human-displayable order and ticket numbers.
// Generated values are practically collision-free; the unique indexes on
// orders.order_number and tickets.ticket_number are the final guarantor, and
// a collision aborts the purchase transaction as a storage error.
type NumberGenerator interface {
	OrderNumber() string
	TicketNumber() string
}

const ticketNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type randomNumberGenerator struct{}

func NewNumberGenerator() NumberGenerator {
	return randomNumberGenerator{}
}

func (randomNumberGenerator) OrderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(10_000))
}

func (randomNumberGenerator) TicketNumber() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = ticketNumberAlphabet[rand.Intn(len(ticketNumberAlphabet))]
	}
	return "T-" + string(b)
}
