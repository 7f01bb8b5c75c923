// Package domain contains rate table models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Table maps category -> service -> base price in MXN.
type Table map[string]map[string]float64

// Labels maps category -> service -> display name.
type Labels map[string]map[string]string

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for category, services := range t {
		copied := make(map[string]float64, len(services))
		for service, price := range services {
			copied[service] = price
		}
		out[category] = copied
	}
	return out
}

// Clone returns a deep copy of the labels.
func (l Labels) Clone() Labels {
	out := make(Labels, len(l))
	for category, services := range l {
		copied := make(map[string]string, len(services))
		for service, name := range services {
			copied[service] = name
		}
		out[category] = copied
	}
	return out
}

// CustomTable is an account's editable copy of the rate table.
type CustomTable struct {
	ID        snowflake.ID               `json:"id" gorm:"primaryKey"`
	OwnerID   string                     `json:"owner_id" gorm:"type:text;not null;uniqueIndex"`
	Prices    datatypes.JSONType[Table]  `json:"prices" gorm:"not null"`
	Labels    datatypes.JSONType[Labels] `json:"labels" gorm:"not null"`
	CreatedAt time.Time                  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time                  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CustomTable) TableName() string { return "custom_rate_tables" }

// Effective is the lookup view pricing runs against: the account's custom
// entries first, system defaults as fallback.
type Effective struct {
	Custom        Table
	CustomLabels  Labels
	Defaults      Table
	DefaultLabels Labels
}

// ResolvePrice returns the base price for (category, service). A miss in the
// custom table falls through to the defaults; a miss in both reports ok=false
// and the caller prices zero.
func (e Effective) ResolvePrice(category, service string) (float64, bool) {
	if services, ok := e.Custom[category]; ok {
		if price, ok := services[service]; ok {
			return price, true
		}
	}
	if services, ok := e.Defaults[category]; ok {
		if price, ok := services[service]; ok {
			return price, true
		}
	}
	return 0, false
}

// ResolveLabel returns the display name for (category, service), falling back
// to the raw service id.
func (e Effective) ResolveLabel(category, service string) string {
	if services, ok := e.CustomLabels[category]; ok {
		if name, ok := services[service]; ok && name != "" {
			return name
		}
	}
	if services, ok := e.DefaultLabels[category]; ok {
		if name, ok := services[service]; ok && name != "" {
			return name
		}
	}
	return service
}
