package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/handlers"
	"github.com/RainerNsa/PhCityRent-sub000/internal/history"
	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/receipt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	calls int
	fail  bool
}

func (u *stubUploader) UploadReceipt(_ context.Context, filename string, _ []byte) (string, error) {
	u.calls++
	if u.fail {
		return "", assert.AnError
	}
	return "https://res.cloudinary.com/phcityrent/receipts/" + filename, nil
}

func seededStore(t *testing.T, reference string) *history.InMemoryStore {
	t.Helper()
	store := history.NewInMemoryStore()
	_, err := store.Upsert(context.Background(), &models.PaymentHistoryRecord{
		ID:            "rec-1",
		Reference:     reference,
		TenantID:      "tenant-9",
		AmountMinor:   45_000_000,
		FeeMinor:      675_000,
		Status:        models.ResultStatusSuccess,
		Provider:      "paystack",
		CustomerName:  "Boma Hart",
		CustomerEmail: "boma@example.com",
		CreatedAt:     time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return store
}

func receiptRouter(store history.Store, uploader *stubUploader) *gin.Engine {
	var h *handlers.ReceiptHandler
	if uploader != nil {
		h = handlers.NewReceiptHandler(store, receipt.Defaults{}, uploader)
	} else {
		h = handlers.NewReceiptHandler(store, receipt.Defaults{}, nil)
	}
	router := gin.New()
	router.GET("/receipts/:reference/:format", h.HandleDownloadReceipt)
	router.POST("/receipts/:reference/share", h.HandleShareReceipt)
	return router
}

func TestDownloadReceipt_UnknownReferenceIs404(t *testing.T) {
	router := receiptRouter(history.NewInMemoryStore(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/missing/pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadReceipt_UnsupportedFormatIs400(t *testing.T) {
	router := receiptRouter(seededStore(t, "phcr-dl-1"), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/phcr-dl-1/docx", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadReceipt_HTMLCarriesPaymentDetails(t *testing.T) {
	router := receiptRouter(seededStore(t, "phcr-dl-2"), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/phcr-dl-2/html", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipt_phcr-dl-2.html")
	assert.Contains(t, w.Body.String(), "phcr-dl-2")
	assert.Contains(t, w.Body.String(), "Boma Hart")
	assert.Contains(t, w.Body.String(), "₦450,000")
}

func TestDownloadReceipt_PDFHasMagicHeader(t *testing.T) {
	router := receiptRouter(seededStore(t, "phcr-dl-3"), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/phcr-dl-3/pdf", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestShareReceipt_UploadsWhenConfigured(t *testing.T) {
	uploader := &stubUploader{}
	router := receiptRouter(seededStore(t, "phcr-sh-1"), uploader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/receipts/phcr-sh-1/share", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uploader.calls)
	assert.Contains(t, w.Body.String(), "receipt_phcr-sh-1.pdf")
	assert.Contains(t, w.Body.String(), "res.cloudinary.com")
}

func TestShareReceipt_UploadFailureStillSharesTextOnly(t *testing.T) {
	uploader := &stubUploader{fail: true}
	router := receiptRouter(seededStore(t, "phcr-sh-2"), uploader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/receipts/phcr-sh-2/share", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"url"`)
	assert.Contains(t, w.Body.String(), "phcr-sh-2")
}

func TestShareReceipt_WithoutUploaderIsTextOnly(t *testing.T) {
	router := receiptRouter(seededStore(t, "phcr-sh-3"), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/receipts/phcr-sh-3/share", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"url"`)
}
