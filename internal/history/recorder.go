// internal/history/recorder.go
package history

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/cache"
	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/money"

	"github.com/google/uuid"
)

// ErrNotSuccessful is returned when a caller tries to record anything other
// than a successful verification outcome. Failed and errored outcomes are
// never persisted here.
var ErrNotSuccessful = errors.New("only successful outcomes are recorded")

// Notifier is the outbound messaging collaborator. Delivery is best-effort;
// the recorder logs and swallows every failure.
type Notifier interface {
	SendPaymentConfirmation(ctx context.Context, phone string, amountMajor float64, reference string) (bool, error)
}

// RecordContext is the caller-supplied context a webhook cannot carry on
// its own: which tenant and property the payment belongs to.
type RecordContext struct {
	TenantID         string
	PropertyID       string
	PropertyTitle    string
	PropertyLocation string
	PaymentItems     []models.PaymentItem
	Metadata         map[string]string
}

// RecordResult is the recorder's answer. AlreadyRecorded means some earlier
// call persisted this reference; the caller should treat it as success.
type RecordResult struct {
	ID              string `json:"id"`
	AlreadyRecorded bool   `json:"already_recorded"`
}

// Recorder is the only writer of payment history. Calling Record any number
// of times for one reference yields exactly one stored record and at most
// one confirmation SMS.
type Recorder struct {
	store    Store
	cache    cache.RecordedCache // optional
	notifier Notifier            // optional
}

func NewRecorder(store Store, recordedCache cache.RecordedCache, notifier Notifier) *Recorder {
	return &Recorder{store: store, cache: recordedCache, notifier: notifier}
}

func (r *Recorder) Record(ctx context.Context, outcome *models.VerificationOutcome, rc RecordContext) (*RecordResult, error) {
	if outcome == nil || outcome.Status != models.StatusSuccess || outcome.Result == nil {
		return nil, ErrNotSuccessful
	}
	reference := outcome.Reference

	if r.cache != nil {
		recorded, err := r.cache.IsRecorded(ctx, reference)
		switch {
		case err != nil:
			log.Printf("WARN: Recorded-cache lookup failed for reference '%s', falling through to the store: %v", reference, err)
		case recorded:
			log.Printf("INFO: Reference '%s' already recorded (cache hit).", reference)
			if rec, err := r.store.FindByReference(ctx, reference); err == nil && rec != nil {
				return &RecordResult{ID: rec.ID, AlreadyRecorded: true}, nil
			}
			return &RecordResult{AlreadyRecorded: true}, nil
		}
	}

	rec := buildRecord(outcome, rc)
	res, err := r.store.Upsert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment '%s': %w", reference, err)
	}

	if r.cache != nil {
		if err := r.cache.MarkRecorded(ctx, reference); err != nil {
			log.Printf("WARN: Could not mark reference '%s' as recorded in cache: %v", reference, err)
		}
	}

	if !res.Inserted {
		log.Printf("INFO: Duplicate record attempt for reference '%s'; keeping the existing row.", reference)
		return &RecordResult{ID: res.ID, AlreadyRecorded: true}, nil
	}

	log.Printf("INFO: Recorded payment '%s' (record id %s).", reference, res.ID)
	r.notify(ctx, outcome)

	return &RecordResult{ID: res.ID}, nil
}

// notify sends the confirmation SMS for a newly inserted record. Failures
// never propagate to the caller.
func (r *Recorder) notify(ctx context.Context, outcome *models.VerificationOutcome) {
	phone := outcome.Result.Customer.Phone
	if r.notifier == nil || phone == "" {
		return
	}

	ok, err := r.notifier.SendPaymentConfirmation(ctx, phone, money.Major(outcome.Result.AmountMinor), outcome.Reference)
	if err != nil {
		log.Printf("WARN: Payment confirmation SMS failed for reference '%s': %v", outcome.Reference, err)
		return
	}
	if !ok {
		log.Printf("WARN: Payment confirmation SMS was not accepted for reference '%s'.", outcome.Reference)
	}
}

func buildRecord(outcome *models.VerificationOutcome, rc RecordContext) *models.PaymentHistoryRecord {
	res := outcome.Result
	return &models.PaymentHistoryRecord{
		ID:               uuid.NewString(),
		Reference:        outcome.Reference,
		TenantID:         rc.TenantID,
		PropertyID:       rc.PropertyID,
		AmountMinor:      res.AmountMinor,
		FeeMinor:         res.FeeMinor,
		Status:           res.Status,
		Channel:          res.Channel,
		Provider:         outcome.Provider,
		ProviderTxID:     res.ProviderTxID,
		PaymentItems:     rc.PaymentItems,
		Metadata:         rc.Metadata,
		CustomerEmail:    res.Customer.Email,
		CustomerName:     res.Customer.FullName(),
		CustomerPhone:    res.Customer.Phone,
		PropertyTitle:    rc.PropertyTitle,
		PropertyLocation: rc.PropertyLocation,
		CreatedAt:        time.Now().UTC(),
	}
}
