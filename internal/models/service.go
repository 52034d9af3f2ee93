package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	// ReminderCategory pins the service to a reminder rule independently of its name.
	ReminderCategory string `gorm:"size:50" json:"reminder_category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
