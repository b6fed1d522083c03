package database

import (
	"context"
	"log"
	"time"

	"github.com/kuritkaj/eventlook/internal/models"
	"github.com/kuritkaj/eventlook/internal/repository"
)

// SeedInitialEvents inserts a handful of sample events so a fresh install has
// something to sell. Does nothing if any event already exists.
func SeedInitialEvents(ctx context.Context, repo repository.EventRepository) error {
	existing, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	now := time.Now()
	events := []models.Event{
		{
			Name:        "Tech Innovations Summit",
			Place:       "San Francisco, CA",
			StartDate:   now.Add(7 * 24 * time.Hour),
			TicketCount: 200,
			TicketPrice: 149.99,
		},
		{
			Name:        "Music Vibes Festival",
			Place:       "Austin, TX",
			StartDate:   now.Add(14 * 24 * time.Hour),
			TicketCount: 500,
			TicketPrice: 89.50,
		},
		{
			Name:        "Design Matters Conference",
			Place:       "New York, NY",
			StartDate:   now.Add(30 * 24 * time.Hour),
			TicketCount: 350,
			TicketPrice: 199.00,
		},
	}

	for i := range events {
		if err := repo.Create(ctx, &events[i]); err != nil {
			return err
		}
	}

	log.Printf("[Seed] created %d initial events", len(events))
	return nil
}
