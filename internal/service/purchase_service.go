package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/kuritkaj/eventlook/internal/cache"
	"github.com/kuritkaj/eventlook/internal/models"
	"github.com/kuritkaj/eventlook/internal/repository"
	"github.com/kuritkaj/eventlook/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound             = errors.New("event not found")
	ErrInvalidPurchaseQuantity   = errors.New("invalid purchase quantity")
	ErrEventSoldOut              = errors.New("event is sold out")
	ErrNotEnoughTicketsAvailable = errors.New("not enough tickets available")
	ErrOrderNotFound             = errors.New("order not found")
)

type PurchaseResult struct {
	Order   models.Order
	Tickets []models.Ticket
}

type PurchaseService interface {
	Purchase(ctx context.Context, eventID uuid.UUID, quantity int) (*PurchaseResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type purchaseService struct {
	eventRepo   repository.EventRepository
	orderRepo   repository.OrderRepository
	numbers     NumberGenerator
	maxPerOrder int
	publisher   *rabbitmq.Publisher
	cache       *cache.RedisCache
}

// NewPurchaseService wires the purchase transaction. publisher and cache may
// be nil; purchases then simply skip the notification and invalidation.
func NewPurchaseService(
	eventRepo repository.EventRepository,
	orderRepo repository.OrderRepository,
	numbers NumberGenerator,
	maxPerOrder int,
	publisher *rabbitmq.Publisher,
	listingCache *cache.RedisCache,
) PurchaseService {
	return &purchaseService{
		eventRepo:   eventRepo,
		orderRepo:   orderRepo,
		numbers:     numbers,
		maxPerOrder: maxPerOrder,
		publisher:   publisher,
		cache:       listingCache,
	}
}

// Purchase reserves quantity tickets for the event as one atomic unit. The
// row lock on the event serializes concurrent purchasers, and the ticket
// count is taken under that lock, so the availability check cannot be
// invalidated before the inserts commit. On any error no order or ticket
// rows become visible.
func (s *purchaseService) Purchase(ctx context.Context, eventID uuid.UUID, quantity int) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := s.orderRepo.WithTx(ctx, func(tx *gorm.DB) error {
		// 1. Lock the event row — serializes concurrent purchase attempts
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// 2. Validate requested quantity
		if quantity <= 0 || quantity > s.maxPerOrder {
			return ErrInvalidPurchaseQuantity
		}

		// 3. Count sold tickets under the lock
		sold, err := s.orderRepo.CountTicketsForEvent(ctx, tx, event.ID)
		if err != nil {
			return err
		}

		available := int64(event.TicketCount) - sold
		if available <= 0 {
			return ErrEventSoldOut
		}
		if int64(quantity) > available {
			// No partial fulfillment: reject outright rather than truncate.
			return ErrNotEnoughTicketsAvailable
		}

		// 4. Materialize the order and its tickets
		order := &models.Order{
			EventID:     event.ID,
			OrderNumber: s.numbers.OrderNumber(),
		}
		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return err
		}

		tickets := make([]models.Ticket, quantity)
		for i := range tickets {
			tickets[i] = models.Ticket{
				EventID:      event.ID,
				OrderID:      order.ID,
				TicketNumber: s.numbers.TicketNumber(),
			}
		}
		if err := s.orderRepo.CreateTickets(ctx, tx, tickets); err != nil {
			return err
		}

		result = &PurchaseResult{Order: *order, Tickets: tickets}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best effort: neither failure affects the purchase.
	if s.publisher != nil {
		if err := s.publisher.Publish("order.placed", result.Order); err != nil {
			log.Printf("[PurchaseService] failed to publish order.placed: %v", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, eventListCacheKey); err != nil {
			log.Printf("[PurchaseService] failed to invalidate event listing cache: %v", err)
		}
	}

	return result, nil
}

func (s *purchaseService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}
