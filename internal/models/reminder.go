package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reminder struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PublicID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"public_id"`

	ClientID      uint   `gorm:"index;not null" json:"client_id"`
	ClientName    string `gorm:"size:100" json:"client_name"`
	AppointmentID *uint  `json:"appointment_id"`

	Type          string     `gorm:"size:20;not null" json:"type"`
	ScheduledDate time.Time  `gorm:"index" json:"scheduled_date"`
	Message       string     `gorm:"type:text" json:"message"`
	Status        string     `gorm:"size:20;default:'pendente'" json:"status"`
	SentDate      *time.Time `json:"sent_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.PublicID == uuid.Nil {
		r.PublicID = uuid.New()
	}
	return nil
}
