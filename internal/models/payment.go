// internal/models/payment.go
package models

import "time"

// TerminalStatus is the final outcome of one verification run for a reference.
type TerminalStatus string

const (
	StatusSuccess TerminalStatus = "success"
	StatusFailed  TerminalStatus = "failed"
	StatusErrored TerminalStatus = "error"
)

// Gateway-side transaction statuses after normalization.
const (
	ResultStatusSuccess = "success"
	ResultStatusFailed  = "failed"
)

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// VerificationResult is the normalized output of one successful provider
// verify call. Every adapter maps its gateway's native response into this
// shape; amounts are always minor units (kobo).
type VerificationResult struct {
	ProviderTxID string    `json:"provider_tx_id"`
	Status       string    `json:"status"`
	AmountMinor  int64     `json:"amount_minor"`
	FeeMinor     int64     `json:"fee_minor"`
	Currency     string    `json:"currency"`
	PaidAt       time.Time `json:"paid_at"`
	Channel      string    `json:"channel"`
	Customer     Customer  `json:"customer"`
}

// VerificationOutcome is the orchestrator's terminal answer for a reference.
// Once produced it never regresses for that reference within one run.
type VerificationOutcome struct {
	Reference string              `json:"reference"`
	Provider  string              `json:"provider,omitempty"`
	Status    TerminalStatus      `json:"status"`
	Result    *VerificationResult `json:"result,omitempty"`
	Attempts  int                 `json:"attempts"`
	Err       string              `json:"error,omitempty"`
}

type PaymentItem struct {
	Name        string `json:"name"`
	AmountMinor int64  `json:"amount_minor"`
}

// PaymentHistoryRecord is the durable row for a successful payment.
// At most one record exists per reference, no matter how many times
// verification is re-triggered.
type PaymentHistoryRecord struct {
	ID               string            `json:"id"`
	Reference        string            `json:"reference"`
	TenantID         string            `json:"tenant_id"`
	PropertyID       string            `json:"property_id"`
	AmountMinor      int64             `json:"amount_minor"`
	FeeMinor         int64             `json:"fee_minor"`
	Status           string            `json:"status"`
	Channel          string            `json:"channel"`
	Provider         string            `json:"provider"`
	ProviderTxID     string            `json:"provider_tx_id"`
	PaymentItems     []PaymentItem     `json:"payment_items,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	CustomerEmail    string            `json:"customer_email"`
	CustomerName     string            `json:"customer_name"`
	CustomerPhone    string            `json:"customer_phone"`
	PropertyTitle    string            `json:"property_title"`
	PropertyLocation string            `json:"property_location"`
	CreatedAt        time.Time         `json:"created_at"`
}

type ReceiptCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ReceiptProperty struct {
	Title    string `json:"title"`
	Location string `json:"location"`
}

// ReceiptData is the canonical receipt structure. Every renderer consumes
// this same value; no renderer derives its own numbers.
type ReceiptData struct {
	Reference     string          `json:"reference"`
	AmountMinor   int64           `json:"amount_minor"`
	Status        string          `json:"status"`
	Provider      string          `json:"provider"`
	Date          time.Time       `json:"date"`
	Customer      ReceiptCustomer `json:"customer"`
	Property      ReceiptProperty `json:"property"`
	PaymentType   string          `json:"payment_type"`
	FeeMinor      int64           `json:"fee_minor"`
	Channel       string          `json:"channel"`
	TransactionID string          `json:"transaction_id"`
}
