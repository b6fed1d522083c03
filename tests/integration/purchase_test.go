//go:build integration

package integration

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kuritkaj/eventlook/internal/models"
	"github.com/kuritkaj/eventlook/internal/repository"
	"github.com/kuritkaj/eventlook/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEvent(t *testing.T, name string, capacity int, price float64) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:        name,
		Place:       "Test Hall",
		StartDate:   time.Now().Add(7 * 24 * time.Hour),
		TicketCount: capacity,
		TicketPrice: price,
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func newPurchaseService(maxPerOrder int) service.PurchaseService {
	eventRepo := repository.NewEventRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	return service.NewPurchaseService(eventRepo, orderRepo, service.NewNumberGenerator(), maxPerOrder, nil, nil)
}

func countRows(t *testing.T, eventID uuid.UUID) (orders int64, tickets int64) {
	t.Helper()
	require.NoError(t, testDB.Model(&models.Order{}).Where("event_id = ?", eventID).Count(&orders).Error)
	require.NoError(t, testDB.Model(&models.Ticket{}).Where("event_id = ?", eventID).Count(&tickets).Error)
	return orders, tickets
}

// Capacity 2, three sequential purchases of one ticket each: the third must
// see a sold out event.
func TestSequentialPurchasesUntilSoldOut(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Tiny Club Night", 2, 25.00)
	svc := newPurchaseService(10)

	for i := 0; i < 2; i++ {
		result, err := svc.Purchase(t.Context(), event.ID, 1)
		require.NoError(t, err)
		assert.Len(t, result.Tickets, 1)
	}

	result, err := svc.Purchase(t.Context(), event.ID, 1)
	assert.ErrorIs(t, err, service.ErrEventSoldOut)
	assert.Nil(t, result)

	_, tickets := countRows(t, event.ID)
	assert.Equal(t, int64(2), tickets)
}

// Capacity 5, one purchase of 6: rejected in full, zero tickets created.
func TestPurchaseMoreThanAvailable(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Small Venue Show", 5, 40.00)
	svc := newPurchaseService(10)

	result, err := svc.Purchase(t.Context(), event.ID, 6)
	assert.ErrorIs(t, err, service.ErrNotEnoughTicketsAvailable)
	assert.Nil(t, result)

	orders, tickets := countRows(t, event.ID)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), tickets)
}

// Capacity 100, two concurrent purchases of 60: exactly one succeeds, the
// other gets a not-enough rejection, and exactly 60 tickets exist afterwards.
func TestConcurrentOverlappingPurchases(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Music Vibes Festival", 100, 89.50)
	svc := newPurchaseService(100)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = svc.Purchase(t.Context(), event.ID, 60)
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrNotEnoughTicketsAvailable):
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one purchase should win")
	assert.Equal(t, 1, rejected, "the loser must get not-enough, not a storage error")

	orders, tickets := countRows(t, event.ID)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(60), tickets)
}

// Quantity 0 fails validation with zero side effects.
func TestPurchaseZeroQuantity(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Design Matters Conference", 350, 199.00)
	svc := newPurchaseService(10)

	result, err := svc.Purchase(t.Context(), event.ID, 0)
	assert.ErrorIs(t, err, service.ErrInvalidPurchaseQuantity)
	assert.Nil(t, result)

	orders, tickets := countRows(t, event.ID)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), tickets)
}

// Unknown event id fails with not-found and zero side effects.
func TestPurchaseUnknownEvent(t *testing.T) {
	cleanTables()
	svc := newPurchaseService(10)

	result, err := svc.Purchase(t.Context(), uuid.New(), 1)
	assert.ErrorIs(t, err, service.ErrEventNotFound)
	assert.Nil(t, result)

	var orders int64
	testDB.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)
}

// Capacity 50 with 100 single-ticket buyers racing: exactly 50 succeed and
// the ticket count never exceeds capacity.
func TestNoOversellUnderConcurrentLoad(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Tech Innovations Summit", 50, 149.99)
	svc := newPurchaseService(10)

	totalBuyers := 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded, soldOut int

	wg.Add(totalBuyers)
	for i := 0; i < totalBuyers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(t.Context(), event.ID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, service.ErrEventSoldOut):
				soldOut++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	assert.Equal(t, 50, soldOut)

	orders, tickets := countRows(t, event.ID)
	assert.Equal(t, int64(50), orders)
	assert.Equal(t, int64(50), tickets, "committed tickets must never exceed capacity")
}

// A successful purchase creates exactly one order and quantity tickets, all
// referencing that order and event, with distinct ticket numbers.
func TestExactFulfillment(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Music Vibes Festival", 500, 89.50)
	svc := newPurchaseService(10)

	result, err := svc.Purchase(t.Context(), event.ID, 4)
	require.NoError(t, err)
	require.Len(t, result.Tickets, 4)

	assert.NotEmpty(t, result.Order.OrderNumber)
	assert.Equal(t, event.ID, result.Order.EventID)

	seen := map[string]bool{}
	for _, ticket := range result.Tickets {
		assert.Equal(t, event.ID, ticket.EventID)
		assert.Equal(t, result.Order.ID, ticket.OrderID)
		assert.False(t, seen[ticket.TicketNumber], "ticket numbers must be distinct")
		seen[ticket.TicketNumber] = true
	}

	orders, tickets := countRows(t, event.ID)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(4), tickets)
}

// A failed purchase leaves order and ticket counts exactly as they were.
func TestFailedPurchaseLeavesNoTrace(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Small Venue Show", 3, 40.00)
	svc := newPurchaseService(10)

	_, err := svc.Purchase(t.Context(), event.ID, 2)
	require.NoError(t, err)

	ordersBefore, ticketsBefore := countRows(t, event.ID)

	_, err = svc.Purchase(t.Context(), event.ID, 2)
	assert.ErrorIs(t, err, service.ErrNotEnoughTicketsAvailable)

	ordersAfter, ticketsAfter := countRows(t, event.ID)
	assert.Equal(t, ordersBefore, ordersAfter)
	assert.Equal(t, ticketsBefore, ticketsAfter)
}

// Listing reflects sold counts, clamps availability at zero and orders events
// by start date.
func TestListingAvailability(t *testing.T) {
	cleanTables()

	later := createTestEvent(t, "Later Event", 10, 10.00)
	testDB.Model(later).Update("start_date", time.Now().Add(48*time.Hour))
	sooner := createTestEvent(t, "Sooner Event", 5, 10.00)
	testDB.Model(sooner).Update("start_date", time.Now().Add(24*time.Hour))

	purchaseSvc := newPurchaseService(10)
	_, err := purchaseSvc.Purchase(t.Context(), sooner.ID, 3)
	require.NoError(t, err)

	eventRepo := repository.NewEventRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	eventSvc := service.NewEventService(eventRepo, orderRepo, nil, nil)

	listing, err := eventSvc.ListEvents(t.Context())
	require.NoError(t, err)
	require.Len(t, listing, 2)

	assert.Equal(t, "Sooner Event", listing[0].Event.Name)
	assert.Equal(t, int64(3), listing[0].TicketsSold)
	assert.Equal(t, "Later Event", listing[1].Event.Name)
	assert.Equal(t, int64(0), listing[1].TicketsSold)
}
