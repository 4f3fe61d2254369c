package service

import (
	"errors"

	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/lunora-app/lunora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Billing event types delivered by the payment provider.
const (
	BillingEventSubscriptionActivated = "subscription.activated"
	BillingEventSubscriptionUpdated   = "subscription.updated"
	BillingEventSubscriptionCanceled  = "subscription.canceled"
	BillingEventSubscriptionExpired   = "subscription.expired"
	BillingEventPaymentFailed         = "payment.failed"
)

// BillingWebhookService maps provider lifecycle events onto the user's
// subscription fields. It is independent of the session model.
type BillingWebhookService interface {
	HandleEvent(event dto.BillingWebhookEvent) error
}

type billingWebhookService struct {
	userRepo repository.UserRepository
}

func NewBillingWebhookService(userRepo repository.UserRepository) BillingWebhookService {
	return &billingWebhookService{userRepo: userRepo}
}

func (s *billingWebhookService) HandleEvent(event dto.BillingWebhookEvent) error {
	user, err := s.userRepo.FindByEmail(event.Data.CustomerEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("email", event.Data.CustomerEmail).Str("eventType", event.EventType).Msg("Billing webhook for unknown customer email")
			return apperr.New(apperr.CodeNotFound, apperr.WithMessagef("no user with email %s", event.Data.CustomerEmail))
		}
		log.Error().Err(err).Str("email", event.Data.CustomerEmail).Msg("Billing webhook: user lookup failed")
		return apperr.Internal(err)
	}

	if event.Data.CustomerID != "" {
		user.BillingCustomerID = event.Data.CustomerID
	}

	switch event.EventType {
	case BillingEventSubscriptionActivated:
		user.Plan = planOrDefault(event.Data.Plan, model.PlanPro)
		user.IsPro = true
		user.SubscriptionStatus = statusOrDefault(event.Data.SubscriptionStatus, "active")
		user.CancelAtNextBillingDate = false
		user.NextBillingDate = event.Data.NextBillingDate

	case BillingEventSubscriptionUpdated:
		if event.Data.Plan != "" {
			user.Plan = event.Data.Plan
			user.IsPro = event.Data.Plan != model.PlanFree
		}
		if event.Data.SubscriptionStatus != "" {
			user.SubscriptionStatus = event.Data.SubscriptionStatus
		}
		user.CancelAtNextBillingDate = event.Data.CancelAtNextBillingDate
		if event.Data.NextBillingDate != nil {
			user.NextBillingDate = event.Data.NextBillingDate
		}

	case BillingEventSubscriptionCanceled:
		// Access continues until the period ends; only the renewal is cut.
		user.SubscriptionStatus = "canceled"
		user.CancelAtNextBillingDate = true

	case BillingEventSubscriptionExpired:
		user.Plan = model.PlanFree
		user.IsPro = false
		user.SubscriptionStatus = "expired"
		user.CancelAtNextBillingDate = false
		user.NextBillingDate = nil

	case BillingEventPaymentFailed:
		user.SubscriptionStatus = "past_due"

	default:
		// Unknown events are acknowledged so the provider stops retrying.
		log.Info().Str("eventType", event.EventType).Msg("Billing webhook: ignoring unhandled event type")
		return nil
	}

	if err := s.userRepo.Save(user); err != nil {
		log.Error().Err(err).Str("userID", user.ID).Str("eventType", event.EventType).Msg("Billing webhook: failed to persist user")
		return apperr.Internal(err)
	}

	log.Info().Str("userID", user.ID).Str("eventType", event.EventType).Str("plan", user.Plan).Bool("isPro", user.IsPro).Msg("Billing webhook applied")
	return nil
}

func planOrDefault(plan, fallback string) string {
	if plan == "" {
		return fallback
	}
	return plan
}

func statusOrDefault(status, fallback string) string {
	if status == "" {
		return fallback
	}
	return status
}
