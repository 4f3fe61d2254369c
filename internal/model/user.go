package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription plans assigned by the billing webhook.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

type User struct {
	ID                      string         `json:"id" gorm:"type:uuid;primarykey"`
	Email                   string         `json:"email" gorm:"not null;uniqueIndex"`
	Name                    string         `json:"name"`
	Plan                    string         `json:"plan" gorm:"not null;default:'free'"`
	IsPro                   bool           `json:"is_pro" gorm:"not null;default:false"`
	SubscriptionStatus      string         `json:"subscription_status,omitempty"`
	CancelAtNextBillingDate bool           `json:"cancel_at_next_billing_date" gorm:"not null;default:false"`
	NextBillingDate         *time.Time     `json:"next_billing_date,omitempty"`
	BillingCustomerID       string         `json:"billing_customer_id,omitempty" gorm:"index"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}
