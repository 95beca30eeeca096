// internal/providers/provider.go
package providers

import (
	"context"
	"strings"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
)

// Provider identifiers accepted on the callback. Anything else resolves to
// the primary gateway.
const (
	ProviderPaystack    = "paystack"
	ProviderFlutterwave = "flutterwave"
	ProviderMonnify     = "monnify"
	ProviderRemita      = "remita"
)

// TestReferencePrefix marks demo references that must never reach a live
// gateway. They are routed to the synthetic adapter instead.
const TestReferencePrefix = "PHC_TEST_"

// Adapter verifies one transaction reference against one gateway and
// normalizes the gateway-native response into a VerificationResult.
// Verify returns *ProviderError for transient failures and *DeclinedError
// when the gateway reports a non-success status.
type Adapter interface {
	Name() string
	Verify(ctx context.Context, reference string) (*models.VerificationResult, error)
}

// Registry selects the adapter for a callback. The primary adapter handles
// absent or unrecognized provider hints; test-prefixed references always go
// to the synthetic adapter regardless of the hint.
type Registry struct {
	adapters  map[string]Adapter
	primary   Adapter
	synthetic Adapter
}

func NewRegistry(primary Adapter, others ...Adapter) *Registry {
	r := &Registry{
		adapters:  make(map[string]Adapter),
		primary:   primary,
		synthetic: NewSyntheticAdapter(),
	}
	r.adapters[primary.Name()] = primary
	for _, a := range others {
		r.adapters[a.Name()] = a
	}
	return r
}

func (r *Registry) Resolve(reference, providerHint string) Adapter {
	if strings.HasPrefix(reference, TestReferencePrefix) {
		return r.synthetic
	}
	if a, ok := r.adapters[strings.ToLower(strings.TrimSpace(providerHint))]; ok {
		return a
	}
	return r.primary
}
