// internal/providers/errors.go
package providers

import "fmt"

// ProviderError covers transient failures talking to a gateway: network
// errors, timeouts, 5xx responses, and an open circuit breaker. These are
// the only adapter errors worth retrying.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// DeclinedError means the gateway answered and explicitly reported a
// non-success transaction status. Repeating the call will not change the
// answer, so this is never retried.
type DeclinedError struct {
	Provider      string
	GatewayStatus string
	Message       string
}

func (e *DeclinedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider %s declined transaction (status %q): %s", e.Provider, e.GatewayStatus, e.Message)
	}
	return fmt.Sprintf("provider %s declined transaction (status %q)", e.Provider, e.GatewayStatus)
}
