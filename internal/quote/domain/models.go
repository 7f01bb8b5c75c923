// Package domain contains quote persistence models and the aggregation types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/disenolab/cotiza/internal/pricing/domain"
	"gorm.io/datatypes"
)

// QuoteStatus is descriptive metadata set by the user. Any status may follow
// any other; there is no enforced workflow.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// ValidStatus reports whether the status is a known value.
func ValidStatus(status QuoteStatus) bool {
	switch status {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Discount tier names.
const (
	VolumeNone      = "none"
	VolumeTwoThree  = "2-3"
	VolumeFourFive  = "4-5"
	VolumeSixPlus   = "6+"
	ClientNormal    = "normal"
	ClientRecurrent = "recurrente"
	ClientVIP       = "vip"
	MaintenanceNone = "none"
	MaintMensual    = "mensual"
	MaintTrimestral = "trimestral"
	MaintAnual      = "anual"
)

// DiscountConfig applies once per quote, never per line item. Matching the
// volume tier to the actual item count is the caller's responsibility.
type DiscountConfig struct {
	VolumeDiscount string `json:"volume_discount"`
	ClientType     string `json:"client_type"`
	Maintenance    string `json:"maintenance"`
}

// Totals is the aggregated quote price in both currencies.
type Totals struct {
	MXN int64 `json:"mxn"`
	USD int64 `json:"usd"`
}

// Quote is a persisted set of priced line items plus whole-quote commercial
// terms. Line items are owned exclusively by their quote.
type Quote struct {
	ID        snowflake.ID                                 `json:"id" gorm:"primaryKey"`
	OwnerID   string                                       `json:"owner_id" gorm:"type:text;not null;index"`
	ClientID  *snowflake.ID                                `json:"client_id,omitempty" gorm:"index"`
	Status    QuoteStatus                                  `json:"status" gorm:"type:text;not null;default:draft"`
	LineItems datatypes.JSONType[[]pricingdomain.LineItem] `json:"line_items" gorm:"not null"`
	Discounts datatypes.JSONType[DiscountConfig]           `json:"discounts" gorm:"not null"`
	TotalMXN  int64                                        `json:"total_mxn" gorm:"not null"`
	TotalUSD  int64                                        `json:"total_usd" gorm:"not null"`
	Currency  string                                       `json:"currency" gorm:"type:text;not null;default:MXN"`
	CreatedAt time.Time                                    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time                                    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Quote) TableName() string { return "quotes" }

// QuoteSummary is the list view joined with the client book.
type QuoteSummary struct {
	Quote
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}
