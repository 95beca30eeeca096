// internal/providers/synthetic.go
package providers

import (
	"context"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
)

// Synthetic sample values. The amount is deliberately recognizable
// (₦450,000) so anyone demoing the pipeline can spot it on a receipt.
const (
	syntheticAmountMinor = 45_000_000
	syntheticFeeMinor    = syntheticAmountMinor * 5 / 100
)

// SyntheticAdapter fabricates a success result for PHC_TEST_ references so
// the full verification, recording and receipt pipeline can be exercised
// without live gateway credentials. It performs no network I/O.
type SyntheticAdapter struct{}

func NewSyntheticAdapter() *SyntheticAdapter { return &SyntheticAdapter{} }

func (a *SyntheticAdapter) Name() string { return "synthetic" }

func (a *SyntheticAdapter) Verify(_ context.Context, reference string) (*models.VerificationResult, error) {
	return &models.VerificationResult{
		ProviderTxID: "SYN-" + reference,
		Status:       models.ResultStatusSuccess,
		AmountMinor:  syntheticAmountMinor,
		FeeMinor:     syntheticFeeMinor,
		Currency:     "NGN",
		PaidAt:       time.Now().UTC(),
		Channel:      "test",
		Customer: models.Customer{
			FirstName: "Ada",
			LastName:  "Okafor",
			Email:     "ada.okafor@example.com",
			Phone:     "+2348012345678",
		},
	}, nil
}
