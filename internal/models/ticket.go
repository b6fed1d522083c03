package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ticket struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TicketNumber string    `gorm:"size:64;uniqueIndex;not null" json:"ticketNumber"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"orderId"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order,omitempty"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
