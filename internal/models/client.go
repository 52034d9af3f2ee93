package models

import "time"

// Cliente do salão, sem login
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string     `gorm:"size:100;not null" json:"name"`
	WhatsApp string     `gorm:"size:20" json:"whatsapp"`
	Email    string     `gorm:"size:100" json:"email"`
	Birthday *time.Time `json:"birthday"`

	VisitCount int        `gorm:"default:0" json:"visit_count"`
	TotalSpent float64    `gorm:"default:0" json:"total_spent"`
	LastVisit  *time.Time `json:"last_visit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
