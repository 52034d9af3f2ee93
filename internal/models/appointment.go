package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID   uint   `gorm:"index" json:"client_id"`
	Client     Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ClientName string `gorm:"size:100" json:"client_name"`

	ServiceID   uint    `json:"service_id"`
	ServiceName string  `gorm:"size:120;not null" json:"service"`
	Price       float64 `json:"price"`

	// Date is the salon-local calendar day (YYYY-MM-DD), Time the start (HH:MM).
	Date     string `gorm:"size:10;index;not null" json:"date"`
	Time     string `gorm:"size:5;not null" json:"time"`
	Duration int    `json:"duration"`

	Status string `gorm:"size:20;default:'agendado'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
