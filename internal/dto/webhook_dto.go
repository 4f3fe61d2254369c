package dto

import "time"

// BillingWebhookEvent is the signed payload delivered by the payment
// provider. Only the fields the subscription mapping needs are decoded.
type BillingWebhookEvent struct {
	EventType string             `json:"event_type" binding:"required"`
	Data      BillingWebhookData `json:"data" binding:"required"`
}

type BillingWebhookData struct {
	CustomerEmail           string     `json:"customer_email" binding:"required,email"`
	CustomerID              string     `json:"customer_id,omitempty"`
	Plan                    string     `json:"plan,omitempty"`
	SubscriptionStatus      string     `json:"subscription_status,omitempty"`
	CancelAtNextBillingDate bool       `json:"cancel_at_next_billing_date,omitempty"`
	NextBillingDate         *time.Time `json:"next_billing_date,omitempty"`
}
