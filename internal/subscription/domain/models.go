// Package domain contains the subscription record and entitlement derivation.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PlanType distinguishes the recurring plan from the one-time purchase.
type PlanType string

const (
	PlanMonthly  PlanType = "monthly"
	PlanLifetime PlanType = "lifetime"
)

// Provider statuses that grant access. Everything else is inactive.
const (
	StatusActive   = "active"
	StatusTrialing = "trialing"
)

// Record mirrors the latest known billing-provider state for one user.
// The provider customer id is the physical key: every webhook carries it, so
// all writes are upserts against it. UserID is written only by the checkout
// event and is null on placeholder rows created when a provider update
// arrives first. Cancellation is a status value, never a row delete, so
// history survives and a delete cannot race an in-flight update.
type Record struct {
	ID                   snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID               *string      `json:"user_id,omitempty" gorm:"type:text;index"`
	StripeCustomerID     string       `json:"stripe_customer_id" gorm:"type:text;not null;uniqueIndex"`
	StripeSubscriptionID string       `json:"stripe_subscription_id" gorm:"type:text"`
	PlanType             PlanType     `json:"plan_type" gorm:"type:text"`
	Status               string       `json:"status" gorm:"type:text;not null"`
	CurrentPeriodStart   *time.Time   `json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *time.Time   `json:"current_period_end,omitempty"`
	CancelAt             *time.Time   `json:"cancel_at,omitempty"`
	CanceledAt           *time.Time   `json:"canceled_at,omitempty"`
	CreatedAt            time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "subscription_records" }

// IsEntitled derives the access decision from the latest provider state.
func IsEntitled(record *Record) bool {
	if record == nil {
		return false
	}
	switch record.Status {
	case StatusActive, StatusTrialing:
		return true
	}
	return false
}

// Entitlement is the derived view consumed by the gate and the UI.
type Entitlement struct {
	Active           bool       `json:"active"`
	PlanType         PlanType   `json:"plan_type,omitempty"`
	Status           string     `json:"status,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	CancelAt         *time.Time `json:"cancel_at,omitempty"`
}
