package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/history"
	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	calls int
	fail  bool
}

func (n *stubNotifier) SendPaymentConfirmation(_ context.Context, phone string, amountMajor float64, reference string) (bool, error) {
	n.calls++
	if n.fail {
		return false, errors.New("sms gateway unavailable")
	}
	return true, nil
}

type stubCache struct {
	recorded map[string]bool
	err      error
	lookups  int
}

func newStubCache() *stubCache { return &stubCache{recorded: make(map[string]bool)} }

func (c *stubCache) IsRecorded(_ context.Context, reference string) (bool, error) {
	c.lookups++
	if c.err != nil {
		return false, c.err
	}
	return c.recorded[reference], nil
}

func (c *stubCache) MarkRecorded(_ context.Context, reference string) error {
	if c.err != nil {
		return c.err
	}
	c.recorded[reference] = true
	return nil
}

func successOutcome(reference string) *models.VerificationOutcome {
	return &models.VerificationOutcome{
		Reference: reference,
		Provider:  "paystack",
		Status:    models.StatusSuccess,
		Attempts:  1,
		Result: &models.VerificationResult{
			ProviderTxID: "409926",
			Status:       models.ResultStatusSuccess,
			AmountMinor:  45_000_000,
			FeeMinor:     675_000,
			Currency:     "NGN",
			PaidAt:       time.Now(),
			Channel:      "card",
			Customer: models.Customer{
				FirstName: "Boma", LastName: "Hart",
				Email: "boma@example.com", Phone: "+2348031112222",
			},
		},
	}
}

func TestRecord_PersistsOnceAndNotifiesOnce(t *testing.T) {
	store := history.NewInMemoryStore()
	notifier := &stubNotifier{}
	rec := history.NewRecorder(store, nil, notifier)
	rc := history.RecordContext{TenantID: "tenant-1", PropertyID: "prop-7"}

	first, err := rec.Record(context.Background(), successOutcome("phcr-once"), rc)
	require.NoError(t, err)
	assert.False(t, first.AlreadyRecorded)
	require.NotEmpty(t, first.ID)

	second, err := rec.Record(context.Background(), successOutcome("phcr-once"), rc)
	require.NoError(t, err)
	assert.True(t, second.AlreadyRecorded)
	assert.Equal(t, first.ID, second.ID)

	assert.Equal(t, 1, store.Len(), "exactly one row per reference")
	assert.Equal(t, 1, notifier.calls, "SMS goes out at most once")
}

func TestRecord_RejectsNonSuccessOutcomes(t *testing.T) {
	store := history.NewInMemoryStore()
	rec := history.NewRecorder(store, nil, nil)

	for _, outcome := range []*models.VerificationOutcome{
		nil,
		{Reference: "phcr-f", Status: models.StatusFailed},
		{Reference: "phcr-e", Status: models.StatusErrored},
		{Reference: "phcr-empty", Status: models.StatusSuccess}, // success without a result
	} {
		_, err := rec.Record(context.Background(), outcome, history.RecordContext{})
		assert.ErrorIs(t, err, history.ErrNotSuccessful)
	}
	assert.Zero(t, store.Len())
}

func TestRecord_NotificationFailureIsSwallowed(t *testing.T) {
	store := history.NewInMemoryStore()
	notifier := &stubNotifier{fail: true}
	rec := history.NewRecorder(store, nil, notifier)

	res, err := rec.Record(context.Background(), successOutcome("phcr-sms-down"), history.RecordContext{})
	require.NoError(t, err, "SMS failures never fail the record operation")
	assert.False(t, res.AlreadyRecorded)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, 1, store.Len())
}

func TestRecord_NoPhoneMeansNoNotification(t *testing.T) {
	store := history.NewInMemoryStore()
	notifier := &stubNotifier{}
	rec := history.NewRecorder(store, nil, notifier)

	outcome := successOutcome("phcr-nophone")
	outcome.Result.Customer.Phone = ""

	_, err := rec.Record(context.Background(), outcome, history.RecordContext{})
	require.NoError(t, err)
	assert.Zero(t, notifier.calls)
}

func TestRecord_CacheHitShortCircuitsTheStore(t *testing.T) {
	store := history.NewInMemoryStore()
	c := newStubCache()
	notifier := &stubNotifier{}
	rec := history.NewRecorder(store, c, notifier)

	_, err := rec.Record(context.Background(), successOutcome("phcr-cached"), history.RecordContext{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	res, err := rec.Record(context.Background(), successOutcome("phcr-cached"), history.RecordContext{})
	require.NoError(t, err)
	assert.True(t, res.AlreadyRecorded)
	assert.NotEmpty(t, res.ID, "existing record id is still resolved for the caller")
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, notifier.calls)
}

func TestRecord_CacheFailureFallsThroughToStore(t *testing.T) {
	store := history.NewInMemoryStore()
	c := newStubCache()
	c.err = errors.New("redis down")
	rec := history.NewRecorder(store, c, nil)

	res, err := rec.Record(context.Background(), successOutcome("phcr-nocache"), history.RecordContext{})
	require.NoError(t, err, "a broken cache must not block recording")
	assert.False(t, res.AlreadyRecorded)
	assert.Equal(t, 1, store.Len())
}
