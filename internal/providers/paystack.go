// internal/providers/paystack.go
package providers

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/go-resty/resty/v2"
)

const paystackAPIBaseURL = "https://api.paystack.co"

// paystackVerifyResponse is Paystack's native verify payload. Amounts and
// fees are already in kobo.
type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID              int64  `json:"id"`
		Status          string `json:"status"` // "success", "failed", "abandoned", ...
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"`
		GatewayResponse string `json:"gateway_response"`
		PaidAt          string `json:"paid_at"`
		Channel         string `json:"channel"`
		Currency        string `json:"currency"`
		Fees            int64  `json:"fees"`
		Customer        struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
		} `json:"customer"`
	} `json:"data"`
}

type paystackAPIError struct {
	Message string `json:"message"`
}

// PaystackAdapter is the primary gateway adapter.
type PaystackAdapter struct {
	secretKey string
	baseURL   string
	client    *gatewayClient
}

// NewPaystackAdapter builds the adapter. Pass an empty baseURL for the live
// endpoint; tests point it at a local server.
func NewPaystackAdapter(secretKey, baseURL string) *PaystackAdapter {
	if baseURL == "" {
		baseURL = paystackAPIBaseURL
	}
	return &PaystackAdapter{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    newGatewayClient(ProviderPaystack),
	}
}

func (a *PaystackAdapter) Name() string { return ProviderPaystack }

func (a *PaystackAdapter) Verify(ctx context.Context, reference string) (*models.VerificationResult, error) {
	var body paystackVerifyResponse
	var apiErr paystackAPIError

	resp, err := a.client.do(func() (*resty.Response, error) {
		return a.client.rest.R().
			SetContext(ctx).
			SetAuthToken(a.secretKey).
			SetResult(&body).
			SetError(&apiErr).
			Get(a.baseURL + "/transaction/verify/" + url.PathEscape(reference))
	})
	if err != nil {
		log.Printf("ERROR: Paystack verification request failed for reference '%s': %v", reference, err)
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	if resp.IsError() {
		// A 4xx means Paystack answered and the transaction cannot be
		// confirmed; the money never moved.
		log.Printf("WARN: Paystack verification rejected for reference '%s' - Status: %s, Message: '%s'",
			reference, resp.Status(), apiErr.Message)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: resp.Status(), Message: apiErr.Message}
	}

	if body.Data.Status != "success" {
		log.Printf("INFO: Paystack reports non-success status '%s' for reference '%s'", body.Data.Status, reference)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: body.Data.Status, Message: body.Data.GatewayResponse}
	}

	return &models.VerificationResult{
		ProviderTxID: strconv.FormatInt(body.Data.ID, 10),
		Status:       models.ResultStatusSuccess,
		AmountMinor:  body.Data.Amount,
		FeeMinor:     body.Data.Fees,
		Currency:     body.Data.Currency,
		PaidAt:       parseGatewayTime(body.Data.PaidAt),
		Channel:      body.Data.Channel,
		Customer: models.Customer{
			FirstName: body.Data.Customer.FirstName,
			LastName:  body.Data.Customer.LastName,
			Email:     body.Data.Customer.Email,
			Phone:     body.Data.Customer.Phone,
		},
	}, nil
}

// parseGatewayTime tolerates the timestamp layouts the gateways actually
// send. A zero time is fine; the receipt builder substitutes the current
// time when the gateway omitted or mangled it.
func parseGatewayTime(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// splitFullName breaks a single-field customer name into first/last for
// gateways that do not separate them.
func splitFullName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
