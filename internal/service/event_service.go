package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kuritkaj/eventlook/internal/cache"
	"github.com/kuritkaj/eventlook/internal/models"
	"github.com/kuritkaj/eventlook/internal/repository"
	"github.com/kuritkaj/eventlook/pkg/rabbitmq"
	"gorm.io/gorm"
)

const eventListCacheKey = "events:all"

// EventWithSold pairs an event with the number of tickets issued against it.
type EventWithSold struct {
	Event       models.Event `json:"event"`
	TicketsSold int64        `json:"ticketsSold"`
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*EventWithSold, error)
	ListEvents(ctx context.Context) ([]EventWithSold, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	orderRepo repository.OrderRepository
	publisher *rabbitmq.Publisher
	cache     *cache.RedisCache
}

// NewEventService builds the read/create side. publisher and cache may be
// nil; listings then always hit the database.
func NewEventService(
	eventRepo repository.EventRepository,
	orderRepo repository.OrderRepository,
	publisher *rabbitmq.Publisher,
	listingCache *cache.RedisCache,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		cache:     listingCache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, eventListCacheKey); err != nil {
			log.Printf("[EventService] failed to invalidate event listing cache: %v", err)
		}
	}

	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*EventWithSold, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	counts, err := s.orderRepo.TicketCountsByEvent(ctx)
	if err != nil {
		return nil, err
	}

	return &EventWithSold{Event: *event, TicketsSold: counts[event.ID]}, nil
}

// ListEvents returns all events ordered by start date with their sold counts.
// The assembled listing is served read-through from Redis when configured;
// the purchase path never consults this cache.
func (s *eventService) ListEvents(ctx context.Context) ([]EventWithSold, error) {
	if s.cache != nil {
		var cached []EventWithSold
		if err := s.cache.Get(ctx, eventListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.orderRepo.TicketCountsByEvent(ctx)
	if err != nil {
		return nil, err
	}

	listing := make([]EventWithSold, len(events))
	for i, event := range events {
		listing[i] = EventWithSold{Event: event, TicketsSold: counts[event.ID]}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, eventListCacheKey, listing); err != nil {
			log.Printf("[EventService] failed to cache event listing: %v", err)
		}
	}

	return listing, nil
}
