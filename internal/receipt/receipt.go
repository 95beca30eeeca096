// internal/receipt/receipt.go
package receipt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/money"
)

// ErrNoResult is returned when a receipt is requested for an outcome that
// carries no verified payment.
var ErrNoResult = errors.New("receipt requires a successful verification result")

const defaultFeePercent = 5

// Defaults fill the gaps when the verified outcome or stored record lacks a
// field, so a receipt can always be produced even from partial data.
type Defaults struct {
	PropertyTitle    string
	PropertyLocation string
	PaymentType      string
	// FeePercent is applied to the amount when the gateway reported no
	// fee. Zero means the standard 5%.
	FeePercent int
}

func (d Defaults) propertyTitle() string {
	if d.PropertyTitle != "" {
		return d.PropertyTitle
	}
	return "Residential Property"
}

func (d Defaults) propertyLocation() string {
	if d.PropertyLocation != "" {
		return d.PropertyLocation
	}
	return "Port Harcourt, Rivers State"
}

func (d Defaults) paymentType() string {
	if d.PaymentType != "" {
		return d.PaymentType
	}
	return "Rent Payment"
}

func (d Defaults) fee(amountMinor int64) int64 {
	pct := d.FeePercent
	if pct <= 0 {
		pct = defaultFeePercent
	}
	return amountMinor * int64(pct) / 100
}

// Build derives the canonical ReceiptData from a successful verification
// outcome. Pure transformation: no I/O, no mutation of the outcome.
func Build(outcome *models.VerificationOutcome, d Defaults) (*models.ReceiptData, error) {
	if outcome == nil || outcome.Status != models.StatusSuccess || outcome.Result == nil {
		return nil, ErrNoResult
	}
	res := outcome.Result

	fee := res.FeeMinor
	if fee == 0 {
		fee = d.fee(res.AmountMinor)
	}
	date := res.PaidAt
	if date.IsZero() {
		date = time.Now()
	}
	name := res.Customer.FullName()
	if name == "" {
		name = "Valued Tenant"
	}

	return &models.ReceiptData{
		Reference:     outcome.Reference,
		AmountMinor:   res.AmountMinor,
		Status:        res.Status,
		Provider:      outcome.Provider,
		Date:          date,
		Customer:      models.ReceiptCustomer{Name: name, Email: res.Customer.Email, Phone: res.Customer.Phone},
		Property:      models.ReceiptProperty{Title: d.propertyTitle(), Location: d.propertyLocation()},
		PaymentType:   d.paymentType(),
		FeeMinor:      fee,
		Channel:       res.Channel,
		TransactionID: res.ProviderTxID,
	}, nil
}

// BuildFromRecord derives ReceiptData from a stored history record, which
// is how re-downloads are served without touching the gateways again.
func BuildFromRecord(rec *models.PaymentHistoryRecord, d Defaults) *models.ReceiptData {
	fee := rec.FeeMinor
	if fee == 0 {
		fee = d.fee(rec.AmountMinor)
	}
	title := rec.PropertyTitle
	if title == "" {
		title = d.propertyTitle()
	}
	location := rec.PropertyLocation
	if location == "" {
		location = d.propertyLocation()
	}
	name := rec.CustomerName
	if name == "" {
		name = "Valued Tenant"
	}

	return &models.ReceiptData{
		Reference:     rec.Reference,
		AmountMinor:   rec.AmountMinor,
		Status:        rec.Status,
		Provider:      rec.Provider,
		Date:          rec.CreatedAt,
		Customer:      models.ReceiptCustomer{Name: name, Email: rec.CustomerEmail, Phone: rec.CustomerPhone},
		Property:      models.ReceiptProperty{Title: title, Location: location},
		PaymentType:   d.paymentType(),
		FeeMinor:      fee,
		Channel:       rec.Channel,
		TransactionID: rec.ProviderTxID,
	}
}

// Filename names a receipt artifact: receipt_{reference}.{ext}.
func Filename(reference, ext string) string {
	return fmt.Sprintf("receipt_%s.%s", reference, ext)
}

// RenderError wraps a single renderer's failure. It never affects other
// renderers or the verification outcome.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s receipt: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

type row struct {
	Label string
	Value string
}

// rows is the single flattening every renderer draws from; it is where the
// amount becomes a display string, exactly once.
func rows(d *models.ReceiptData) []row {
	currency := "NGN"
	out := []row{
		{"Reference", d.Reference},
		{"Amount Paid", money.FormatMinor(d.AmountMinor, currency)},
		{"Transaction Fee", money.FormatMinor(d.FeeMinor, currency)},
		{"Status", strings.ToUpper(d.Status)},
		{"Date", d.Date.Format("02 Jan 2006, 3:04 PM")},
		{"Payment Type", d.PaymentType},
		{"Property", d.Property.Title},
		{"Location", d.Property.Location},
		{"Tenant", d.Customer.Name},
		{"Email", d.Customer.Email},
	}
	if d.Customer.Phone != "" {
		out = append(out, row{"Phone", d.Customer.Phone})
	}
	if d.Provider != "" {
		out = append(out, row{"Gateway", d.Provider})
	}
	if d.Channel != "" {
		out = append(out, row{"Channel", d.Channel})
	}
	if d.TransactionID != "" {
		out = append(out, row{"Transaction ID", d.TransactionID})
	}
	return out
}
