// internal/providers/remita.go
package providers

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"log"
	"net/url"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/go-resty/resty/v2"
)

const remitaAPIBaseURL = "https://remitademo.net/remita/exapp/api/v1/send/api"

// Remita settles bill payments against an RRR (Remita Retrieval Reference)
// and signals outcomes with numeric status codes instead of words.
var remitaSuccessCodes = map[string]bool{
	"00": true, // transaction completed
	"01": true, // transaction approved
}

type remitaStatusResponse struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	Amount          float64 `json:"amount"`
	RRR             string  `json:"RRR"`
	TransactionTime string  `json:"transactiontime"`
	Channel         string  `json:"channel"`
	Email           string  `json:"email"`
	PayerName       string  `json:"payerName"`
}

type RemitaAdapter struct {
	merchantID string
	apiKey     string
	baseURL    string
	client     *gatewayClient
}

func NewRemitaAdapter(merchantID, apiKey, baseURL string) *RemitaAdapter {
	if baseURL == "" {
		baseURL = remitaAPIBaseURL
	}
	return &RemitaAdapter{
		merchantID: merchantID,
		apiKey:     apiKey,
		baseURL:    baseURL,
		client:     newGatewayClient(ProviderRemita),
	}
}

func (a *RemitaAdapter) Name() string { return ProviderRemita }

func (a *RemitaAdapter) Verify(ctx context.Context, reference string) (*models.VerificationResult, error) {
	var body remitaStatusResponse

	// Remita authenticates status checks with a SHA-512 of RRR+apiKey+merchantId.
	sum := sha512.Sum512([]byte(reference + a.apiKey + a.merchantID))
	token := hex.EncodeToString(sum[:])

	resp, err := a.client.do(func() (*resty.Response, error) {
		return a.client.rest.R().
			SetContext(ctx).
			SetHeader("Authorization", "remitaConsumerKey="+a.merchantID+",remitaConsumerToken="+token).
			SetResult(&body).
			SetError(&body).
			Get(a.baseURL + "/echannelsvc/" + url.PathEscape(a.merchantID) + "/" + url.PathEscape(reference) + "/" + token + "/status.reg")
	})
	if err != nil {
		log.Printf("ERROR: Remita status request failed for RRR '%s': %v", reference, err)
		return nil, &ProviderError{Provider: a.Name(), Err: err}
	}

	if resp.IsError() || !remitaSuccessCodes[body.Status] {
		log.Printf("INFO: Remita reports status '%s' for RRR '%s': %s", body.Status, reference, body.Message)
		return nil, &DeclinedError{Provider: a.Name(), GatewayStatus: body.Status, Message: body.Message}
	}

	first, last := splitFullName(body.PayerName)

	return &models.VerificationResult{
		ProviderTxID: body.RRR,
		Status:       models.ResultStatusSuccess,
		AmountMinor:  majorToMinor(body.Amount),
		Currency:     "NGN",
		PaidAt:       parseGatewayTime(body.TransactionTime),
		Channel:      body.Channel,
		Customer: models.Customer{
			FirstName: first,
			LastName:  last,
			Email:     body.Email,
		},
	}, nil
}
