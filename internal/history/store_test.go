package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/history"
	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(reference, tenantID string) *models.PaymentHistoryRecord {
	return &models.PaymentHistoryRecord{
		ID:               uuid.NewString(),
		Reference:        reference,
		TenantID:         tenantID,
		PropertyID:       "prop-7",
		AmountMinor:      45_000_000,
		FeeMinor:         675_000,
		Status:           models.ResultStatusSuccess,
		Channel:          "card",
		Provider:         "paystack",
		ProviderTxID:     "4099260516",
		PaymentItems:     []models.PaymentItem{{Name: "Annual Rent", AmountMinor: 45_000_000}},
		Metadata:         map[string]string{"source": "callback"},
		CustomerEmail:    "boma@example.com",
		CustomerName:     "Boma Hart",
		CustomerPhone:    "+2348031112222",
		PropertyTitle:    "2-Bedroom Flat, GRA Phase 2",
		PropertyLocation: "Port Harcourt",
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

// Both store implementations must satisfy the same contract.
func runStoreSuite(t *testing.T, store history.Store) {
	ctx := context.Background()

	t.Run("upsert then find", func(t *testing.T) {
		rec := sampleRecord("phcr-find", "tenant-1")
		res, err := store.Upsert(ctx, rec)
		require.NoError(t, err)
		assert.True(t, res.Inserted)
		assert.Equal(t, rec.ID, res.ID)

		got, err := store.FindByReference(ctx, "phcr-find")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rec.Reference, got.Reference)
		assert.Equal(t, rec.AmountMinor, got.AmountMinor)
		assert.Equal(t, rec.PaymentItems, got.PaymentItems)
		assert.Equal(t, rec.Metadata, got.Metadata)
		assert.Equal(t, rec.PropertyTitle, got.PropertyTitle)
	})

	t.Run("duplicate reference is a no-op", func(t *testing.T) {
		first := sampleRecord("phcr-dup", "tenant-1")
		res, err := store.Upsert(ctx, first)
		require.NoError(t, err)
		require.True(t, res.Inserted)

		second := sampleRecord("phcr-dup", "tenant-1")
		second.AmountMinor = 99 // must not overwrite the original
		res, err = store.Upsert(ctx, second)
		require.NoError(t, err)
		assert.False(t, res.Inserted)
		assert.Equal(t, first.ID, res.ID, "existing row's id is reported")

		got, err := store.FindByReference(ctx, "phcr-dup")
		require.NoError(t, err)
		assert.Equal(t, int64(45_000_000), got.AmountMinor)
	})

	t.Run("find unknown reference", func(t *testing.T) {
		got, err := store.FindByReference(ctx, "phcr-nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list by tenant newest first", func(t *testing.T) {
		older := sampleRecord("phcr-old", "tenant-list")
		older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
		newer := sampleRecord("phcr-new", "tenant-list")

		_, err := store.Upsert(ctx, older)
		require.NoError(t, err)
		_, err = store.Upsert(ctx, newer)
		require.NoError(t, err)

		records, err := store.ListByTenant(ctx, "tenant-list")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "phcr-new", records[0].Reference)
		assert.Equal(t, "phcr-old", records[1].Reference)
	})
}

func TestInMemoryStore(t *testing.T) {
	runStoreSuite(t, history.NewInMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	store, err := history.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	runStoreSuite(t, store)
}
