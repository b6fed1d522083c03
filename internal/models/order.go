package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string    `gorm:"size:64;uniqueIndex;not null" json:"orderNumber"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`
	CreatedAt   time.Time `json:"createdAt"`

	Event   *Event   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:OrderID" json:"tickets,omitempty"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}
