package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kuritkaj/eventlook/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error
	CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error
	CountTicketsForEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
	TicketCountsByEvent(ctx context.Context) (map[uuid.UUID]int64, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// WithTx runs fn inside a single database transaction. fn returning an error
// rolls back every write made through the supplied tx handle.
func (r *orderRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error {
	return tx.WithContext(ctx).Create(&tickets).Error
}

// CountTicketsForEvent counts issued tickets inside the caller's transaction,
// so combined with the event row lock the result cannot be invalidated by a
// concurrent purchaser.
func (r *orderRepository) CountTicketsForEvent(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// TicketCountsByEvent is the lock-free aggregate used for listings.
func (r *orderRepository) TicketCountsByEvent(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		EventID uuid.UUID
		Sold    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Select("event_id, count(*) AS sold").
		Group("event_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Sold
	}
	return counts, nil
}

func (r *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Tickets").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
