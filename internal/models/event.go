package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Place       string    `gorm:"size:255;not null" json:"place"`
	StartDate   time.Time `gorm:"not null" json:"startDate"`
	TicketCount int       `gorm:"not null" json:"ticketCount"`
	TicketPrice float64   `gorm:"type:numeric(10,2);not null" json:"ticketPrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Orders  []Order  `gorm:"foreignKey:EventID" json:"orders,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:EventID" json:"tickets,omitempty"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
