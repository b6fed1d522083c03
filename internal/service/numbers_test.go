package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumberFormat(t *testing.T) {
	gen := NewNumberGenerator()

	number := gen.OrderNumber()
	assert.True(t, strings.HasPrefix(number, "ORD-"), "got %q", number)

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
}

func TestTicketNumberFormat(t *testing.T) {
	gen := NewNumberGenerator()

	number := gen.TicketNumber()
	assert.True(t, strings.HasPrefix(number, "T-"), "got %q", number)
	assert.Len(t, number, 10)

	for _, r := range strings.TrimPrefix(number, "T-") {
		assert.Contains(t, ticketNumberAlphabet, string(r))
	}
}
