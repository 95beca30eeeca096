// internal/services/sms.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/retry"

	"github.com/go-resty/resty/v2"
)

const termiiAPIBaseURL = "https://api.ng.termii.com/api"

// termiiSendRequest is the payload Termii's /sms/send endpoint expects.
type termiiSendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	SMS     string `json:"sms"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	APIKey  string `json:"api_key"`
}

type termiiSendResponse struct {
	MessageID string `json:"message_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type termiiAPIError struct {
	Message string `json:"message"`
}

// SMSService sends transactional SMS through Termii. A zero-key service is
// disabled and reports every send as skipped rather than failing callers.
type SMSService struct {
	apiKey   string
	senderID string
	baseURL  string
	client   *resty.Client
}

func NewSMSService(apiKey, senderID, baseURL string) *SMSService {
	if baseURL == "" {
		baseURL = termiiAPIBaseURL
	}
	if senderID == "" {
		senderID = "PhCityRent"
	}
	return &SMSService{
		apiKey:   apiKey,
		senderID: senderID,
		baseURL:  baseURL,
		client:   resty.New().SetTimeout(10 * time.Second),
	}
}

// SendPaymentConfirmation texts the tenant that their payment went through.
// Returns (false, nil) when SMS is not configured.
func (s *SMSService) SendPaymentConfirmation(ctx context.Context, phone string, amountMajor float64, reference string) (bool, error) {
	if s.apiKey == "" {
		log.Printf("WARN: Termii API key is not set; skipping payment confirmation SMS for '%s'", reference)
		return false, nil
	}

	message := fmt.Sprintf("PhCityRent: your payment of NGN %.2f (ref %s) has been confirmed. Your receipt is ready in the app.",
		amountMajor, reference)

	cfg := retry.Config{
		MaxAttempts: 2,
		Delay:       500 * time.Millisecond,
		OnAttemptFailed: func(attempt int, err error) {
			log.Printf("WARN: Termii send attempt %d failed for '%s': %v", attempt, reference, err)
		},
	}

	_, err := retry.Do(ctx, cfg, func(ctx context.Context) (string, error) {
		return s.send(ctx, phone, message)
	})
	if err != nil {
		return false, err
	}

	log.Printf("INFO: Payment confirmation SMS sent to '%s' for reference '%s'", phone, reference)
	return true, nil
}

func (s *SMSService) send(ctx context.Context, phone, message string) (string, error) {
	var successResp termiiSendResponse
	var errorResp termiiAPIError

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(termiiSendRequest{
			To:      phone,
			From:    s.senderID,
			SMS:     message,
			Type:    "plain",
			Channel: "generic",
			APIKey:  s.apiKey,
		}).
		SetResult(&successResp).
		SetError(&errorResp).
		Post(s.baseURL + "/sms/send")

	if err != nil {
		return "", fmt.Errorf("could not connect to SMS provider: %w", err)
	}
	if resp.IsError() {
		if errorResp.Message != "" {
			return "", fmt.Errorf("termii API error: %s", errorResp.Message)
		}
		return "", fmt.Errorf("termii API error: received status %s", resp.Status())
	}
	return successResp.MessageID, nil
}
