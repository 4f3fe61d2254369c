package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lunora-app/lunora/config"
	"github.com/lunora-app/lunora/internal/apperr"
	"github.com/lunora-app/lunora/internal/dto"
	"github.com/lunora-app/lunora/internal/service"
	"github.com/rs/zerolog/log"
)

// SignatureHeader carries the provider's hex-encoded HMAC-SHA256 of the raw
// request body.
const SignatureHeader = "X-Lunora-Signature"

type BillingWebhookController struct {
	billingService service.BillingWebhookService
	secret         string
}

func NewBillingWebhookController(billingService service.BillingWebhookService, cfg *config.Config) *BillingWebhookController {
	if cfg.Billing.WebhookSecret == "" {
		log.Warn().Msg("BILLING_WEBHOOK_SECRET is not set. Webhook signatures cannot be verified and events will be rejected.")
	}
	return &BillingWebhookController{billingService: billingService, secret: cfg.Billing.WebhookSecret}
}

// HandleBillingEvent godoc
// @Summary Receive a signed billing lifecycle event
// @Description Verifies the HMAC signature over the raw body, then maps the event onto the customer's subscription fields.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-Lunora-Signature header string true "Hex HMAC-SHA256 of the body"
// @Param event body dto.BillingWebhookEvent true "Provider event payload"
// @Success 200 {object} map[string]string
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid signature"
// @Failure 404 {object} dto.ErrorResponse "Unknown customer email"
// @Router /webhooks/billing [post]
func (c *BillingWebhookController) HandleBillingEvent(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to read request body"})
		return
	}

	if !c.verifySignature(body, ctx.GetHeader(SignatureHeader)) {
		log.Warn().Str("remote", ctx.ClientIP()).Msg("Billing webhook: signature verification failed")
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid webhook signature"})
		return
	}

	var event dto.BillingWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Warn().Err(err).Msg("Billing webhook: failed to decode payload")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid event payload", Details: []string{err.Error()}})
		return
	}
	if event.EventType == "" || event.Data.CustomerEmail == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "event_type and data.customer_email are required"})
		return
	}

	if err := c.billingService.HandleEvent(event); err != nil {
		e := apperr.Convert(err)
		ctx.JSON(e.HTTPStatusCode(), dto.ErrorResponse{Message: e.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func (c *BillingWebhookController) verifySignature(body []byte, signature string) bool {
	if c.secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
