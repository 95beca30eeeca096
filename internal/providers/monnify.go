// internal/providers/monnify.go
package providers

import (
	"context"
	"encoding/base64"
	"log"
	"net/url"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/go-resty/resty/v2"
)

const monnifyAPIBaseURL = "https://api.monnify.com"

// monnifyTransactionResponse is Monnify's native payload. Amounts are in
// major units and the status vocabulary is upper-cased.
type monnifyTransactionResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		TransactionReference string  `json:"transactionReference"`
		PaymentReference     string  `json:"paymentReference"`
		AmountPaid           float64 `json:"amountPaid"`
		Fee                  float64 `json:"fee"`
		PaymentStatus        string  `json:"paymentStatus"` // "PAID", "FAILED", "PENDING", ...
		PaidOn               string  `json:"paidOn"`
		PaymentMethod        string  `json:"paymentMethod"`
		CurrencyCode         string  `json:"currencyCode"`
		CustomerDTO          struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"customerDTO"`
	} `json:"responseBody"`
}

type MonnifyAdapter struct {
	apiKey    string
	secretKey string
	baseURL   string
	client    *gatewayClient
}

func NewMonnifyAdapter(apiKey, secretKey, baseURL string) *MonnifyAdapter {
	if baseURL == "" {
		baseURL = monnifyAPIBaseURL
	}
	return &MonnifyAdapter{
		apiKey:    apiKey,
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    newGatewayClient(ProviderMonnify),
	}
}

func (a *MonnifyAdapter) Name() string { return ProviderMonnify }

func (a *MonnifyAdapter) Verify(ctx context.Context, reference string) (*models.VerificationResult, error) {
	var body monnifyTransactionResponse

	basic := base64.StdEncoding.EncodeToString([]byte(a.apiKey + ":" + a.secretKey))

	resp, err := a.client.do(func() (*resty.Response, error) {
		return a.client.rest.R().
			SetContext(ctx).
			SetHeader("Authorization", "Basic "+basic).
			SetResult(&body).
			SetError(&body).
			Get(a.baseURL + "/api/v2/transactions/" + url.PathEscape(reference))
	})
	if err != nil {
		log.Printf("ERROR: Monnify verification request failed for reference '%s': %v", reference, err)
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	if resp.IsError() || !body.RequestSuccessful {
		log.Printf("WARN: Monnify could not confirm reference '%s' - Status: %s, Message: '%s'",
			reference, resp.Status(), body.ResponseMessage)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: resp.Status(), Message: body.ResponseMessage}
	}

	if body.ResponseBody.PaymentStatus != "PAID" {
		log.Printf("INFO: Monnify reports non-success status '%s' for reference '%s'",
			body.ResponseBody.PaymentStatus, reference)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: body.ResponseBody.PaymentStatus}
	}

	first, last := splitFullName(body.ResponseBody.CustomerDTO.Name)

	currency := body.ResponseBody.CurrencyCode
	if currency == "" {
		currency = "NGN"
	}

	return &models.VerificationResult{
		ProviderTxID: body.ResponseBody.TransactionReference,
		Status:       models.ResultStatusSuccess,
		AmountMinor:  majorToMinor(body.ResponseBody.AmountPaid),
		FeeMinor:     majorToMinor(body.ResponseBody.Fee),
		Currency:     currency,
		PaidAt:       parseGatewayTime(body.ResponseBody.PaidOn),
		Channel:      body.ResponseBody.PaymentMethod,
		Customer: models.Customer{
			FirstName: first,
			LastName:  last,
			Email:     body.ResponseBody.CustomerDTO.Email,
		},
	}, nil
}
