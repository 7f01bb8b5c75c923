// Package domain contains the client book models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a designer's customer; quotes reference it for display and PDF
// output. Thin record, no domain logic.
type Client struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	OwnerID   string       `json:"owner_id" gorm:"type:text;not null;index"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Email     string       `json:"email" gorm:"type:text"`
	Company   string       `json:"company" gorm:"type:text"`
	Phone     string       `json:"phone" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
