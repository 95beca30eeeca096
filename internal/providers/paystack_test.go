package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paystackSuccessFixture = `{
	"status": true,
	"message": "Verification successful",
	"data": {
		"id": 4099260516,
		"status": "success",
		"reference": "phcr-6f7a2b",
		"amount": 45000000,
		"gateway_response": "Successful",
		"paid_at": "2024-08-22T09:15:02.000Z",
		"channel": "card",
		"currency": "NGN",
		"fees": 675000,
		"customer": {
			"first_name": "Ibinabo",
			"last_name": "Jack",
			"email": "ibinabo.jack@example.com",
			"phone": "+2348031112222"
		}
	}
}`

func TestPaystackAdapter_NormalizesSuccess(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(paystackSuccessFixture))
	}))
	defer srv.Close()

	adapter := providers.NewPaystackAdapter("sk_test_abc", srv.URL)
	res, err := adapter.Verify(context.Background(), "phcr-6f7a2b")

	require.NoError(t, err)
	assert.Equal(t, "/transaction/verify/phcr-6f7a2b", gotPath)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)

	assert.Equal(t, "4099260516", res.ProviderTxID)
	assert.Equal(t, models.ResultStatusSuccess, res.Status)
	assert.Equal(t, int64(45_000_000), res.AmountMinor)
	assert.Equal(t, int64(675_000), res.FeeMinor)
	assert.Equal(t, "NGN", res.Currency)
	assert.Equal(t, "card", res.Channel)
	assert.Equal(t, "Ibinabo Jack", res.Customer.FullName())
	assert.Equal(t, 2024, res.PaidAt.Year())
	assert.Equal(t, time.August, res.PaidAt.Month())
}

func TestPaystackAdapter_GatewayDeclineIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true, "message": "Verification successful",
			"data": {"status": "abandoned", "gateway_response": "The transaction was not completed"}}`))
	}))
	defer srv.Close()

	adapter := providers.NewPaystackAdapter("sk_test_abc", srv.URL)
	_, err := adapter.Verify(context.Background(), "phcr-dead")

	var declined *providers.DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "abandoned", declined.GatewayStatus)
}

func TestPaystackAdapter_NotFoundDeclines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	adapter := providers.NewPaystackAdapter("sk_test_abc", srv.URL)
	_, err := adapter.Verify(context.Background(), "phcr-missing")

	var declined *providers.DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "Transaction reference not found", declined.Message)
}

func TestPaystackAdapter_ServerErrorIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := providers.NewPaystackAdapter("sk_test_abc", srv.URL)
	_, err := adapter.Verify(context.Background(), "phcr-flaky")

	var perr *providers.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "paystack", perr.Provider)
}

func TestPaystackAdapter_NetworkFailureIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	adapter := providers.NewPaystackAdapter("sk_test_abc", srv.URL)
	_, err := adapter.Verify(context.Background(), "phcr-unreachable")

	var perr *providers.ProviderError
	require.ErrorAs(t, err, &perr)
}
