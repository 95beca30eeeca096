// internal/handlers/payment_handler.go
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/RainerNsa/PhCityRent-sub000/internal/history"
	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/money"
	"github.com/RainerNsa/PhCityRent-sub000/internal/verify"

	"github.com/gin-gonic/gin"
)

var receiptFormats = []string{"pdf", "png", "jpeg", "html", "print"}

type PaymentHandler struct {
	orchestrator *verify.Orchestrator
	recorder     *history.Recorder
}

func NewPaymentHandler(orchestrator *verify.Orchestrator, recorder *history.Recorder) *PaymentHandler {
	return &PaymentHandler{orchestrator: orchestrator, recorder: recorder}
}

// callbackReference digs the transaction reference out of the query string.
// Gateways disagree on the parameter name, so all three spellings are
// accepted.
func callbackReference(c *gin.Context) string {
	ref := strings.TrimSpace(c.Query("reference"))
	if ref == "" {
		ref = strings.TrimSpace(c.Query("trx_ref"))
	}
	if ref == "" {
		ref = strings.TrimSpace(c.Query("tx_ref"))
	}
	return ref
}

// HandlePaymentCallback is where the gateway redirects the tenant's browser
// after checkout. The claimed status in the redirect is ignored; the payment
// is re-verified against the gateway before anything is recorded.
func (h *PaymentHandler) HandlePaymentCallback(c *gin.Context) {
	reference := callbackReference(c)
	if reference == "" {
		log.Println("WARN: Payment callback received without a transaction reference.")
		respondError(c, http.StatusBadRequest, "Transaction reference is required.")
		return
	}

	log.Printf("INFO: Payment callback received for reference: %s", reference)
	outcome := h.orchestrator.Verify(c.Request.Context(), reference, c.Query("provider"))

	switch outcome.Status {
	case models.StatusSuccess:
		h.respondSuccess(c, outcome)
	case models.StatusFailed:
		c.JSON(http.StatusOK, gin.H{
			"status":    models.StatusFailed,
			"reference": reference,
			"message":   "The payment was not successful. Please try paying again.",
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"status":    models.StatusErrored,
			"reference": reference,
			"message":   "We could not confirm this payment right now. Please retry the check shortly.",
		})
	}
}

// HandlePaymentWebhook is the server-to-server notification path. The
// signature was already checked by middleware; the response is always 200 so
// gateways stop redelivering.
func (h *PaymentHandler) HandlePaymentWebhook(c *gin.Context) {
	var payload struct {
		Reference string `json:"reference"`
		TxRef     string `json:"tx_ref"`
		Provider  string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("WARN: Payment webhook carried an unreadable body: %v", err)
		c.Status(http.StatusOK)
		return
	}

	reference := payload.Reference
	if reference == "" {
		reference = payload.TxRef
	}
	if reference == "" {
		log.Println("WARN: Payment webhook received without a transaction reference.")
		c.Status(http.StatusOK)
		return
	}

	log.Printf("INFO: Payment webhook received for reference: %s", reference)
	outcome := h.orchestrator.Verify(c.Request.Context(), reference, payload.Provider)

	if outcome.Status == models.StatusSuccess {
		if _, err := h.recorder.Record(c.Request.Context(), outcome, history.RecordContext{}); err != nil {
			log.Printf("ERROR: Failed to record webhook payment '%s': %v", reference, err)
		}
	} else {
		log.Printf("INFO: Webhook verification for reference '%s' ended as %s. Nothing recorded.", reference, outcome.Status)
	}

	c.Status(http.StatusOK)
}

func (h *PaymentHandler) respondSuccess(c *gin.Context, outcome *models.VerificationOutcome) {
	rc := history.RecordContext{
		TenantID:         c.Query("tenant_id"),
		PropertyID:       c.Query("property_id"),
		PropertyTitle:    c.Query("property_title"),
		PropertyLocation: c.Query("property_location"),
	}

	res, err := h.recorder.Record(c.Request.Context(), outcome, rc)
	if err != nil {
		log.Printf("ERROR: Verified payment '%s' could not be recorded: %v", outcome.Reference, err)
		respondError(c, http.StatusInternalServerError, "Payment verified but could not be recorded. Support has been notified.")
		return
	}

	urls := make(map[string]string, len(receiptFormats))
	for _, format := range receiptFormats {
		urls[format] = fmt.Sprintf("/receipts/%s/%s", outcome.Reference, format)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          models.StatusSuccess,
		"reference":       outcome.Reference,
		"amount":          money.FormatMinor(outcome.Result.AmountMinor, outcome.Result.Currency),
		"provider":        outcome.Provider,
		"recordId":        res.ID,
		"alreadyRecorded": res.AlreadyRecorded,
		"receiptUrls":     urls,
	})
}
