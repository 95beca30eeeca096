// internal/providers/flutterwave.go
package providers

import (
	"context"
	"log"
	"math"
	"net/url"
	"strconv"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/go-resty/resty/v2"
)

const flutterwaveAPIBaseURL = "https://api.flutterwave.com/v3"

// flutterwaveVerifyResponse is Flutterwave's native payload. Amounts come
// back in major units and the customer name is a single field, both of
// which this adapter normalizes.
type flutterwaveVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID          int64   `json:"id"`
		TxRef       string  `json:"tx_ref"`
		FlwRef      string  `json:"flw_ref"`
		Amount      float64 `json:"amount"`
		Currency    string  `json:"currency"`
		AppFee      float64 `json:"app_fee"`
		Status      string  `json:"status"` // "successful", "failed", ...
		PaymentType string  `json:"payment_type"`
		CreatedAt   string  `json:"created_at"`
		Customer    struct {
			Name        string `json:"name"`
			Email       string `json:"email"`
			PhoneNumber string `json:"phone_number"`
		} `json:"customer"`
	} `json:"data"`
}

type FlutterwaveAdapter struct {
	secretKey string
	baseURL   string
	client    *gatewayClient
}

func NewFlutterwaveAdapter(secretKey, baseURL string) *FlutterwaveAdapter {
	if baseURL == "" {
		baseURL = flutterwaveAPIBaseURL
	}
	return &FlutterwaveAdapter{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    newGatewayClient(ProviderFlutterwave),
	}
}

func (a *FlutterwaveAdapter) Name() string { return ProviderFlutterwave }

func (a *FlutterwaveAdapter) Verify(ctx context.Context, reference string) (*models.VerificationResult, error) {
	var body flutterwaveVerifyResponse

	resp, err := a.client.do(func() (*resty.Response, error) {
		return a.client.rest.R().
			SetContext(ctx).
			SetAuthToken(a.secretKey).
			SetResult(&body).
			SetError(&body).
			Get(a.baseURL + "/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference))
	})
	if err != nil {
		log.Printf("ERROR: Flutterwave verification request failed for reference '%s': %v", reference, err)
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	if resp.IsError() || body.Status != "success" {
		log.Printf("WARN: Flutterwave could not confirm reference '%s' - Status: %s, Message: '%s'",
			reference, resp.Status(), body.Message)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: body.Status, Message: body.Message}
	}

	if body.Data.Status != "successful" {
		log.Printf("INFO: Flutterwave reports non-success status '%s' for reference '%s'", body.Data.Status, reference)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: body.Data.Status}
	}

	first, last := splitFullName(body.Data.Customer.Name)

	return &models.VerificationResult{
		ProviderTxID: strconv.FormatInt(body.Data.ID, 10),
		Status:       models.ResultStatusSuccess,
		AmountMinor:  majorToMinor(body.Data.Amount),
		FeeMinor:     majorToMinor(body.Data.AppFee),
		Currency:     body.Data.Currency,
		PaidAt:       parseGatewayTime(body.Data.CreatedAt),
		Channel:      body.Data.PaymentType,
		Customer: models.Customer{
			FirstName: first,
			LastName:  last,
			Email:     body.Data.Customer.Email,
			Phone:     body.Data.Customer.PhoneNumber,
		},
	}, nil
}

func majorToMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
