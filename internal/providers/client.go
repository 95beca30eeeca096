// internal/providers/client.go
package providers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const defaultRequestTimeout = 15 * time.Second

// gatewayClient pairs a resty client with a per-gateway circuit breaker.
// A gateway that keeps failing stops receiving traffic for a cooldown
// window; an open breaker is reported like any other transient failure.
type gatewayClient struct {
	rest    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func newGatewayClient(name string) *gatewayClient {
	return &gatewayClient{
		rest: resty.New().SetTimeout(defaultRequestTimeout),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// do runs one gateway request through the breaker. Network errors and 5xx
// responses count as breaker failures; anything the gateway answered with
// below 500 is handed back for the adapter to interpret.
func (g *gatewayClient) do(fn func() (*resty.Response, error)) (*resty.Response, error) {
	v, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("gateway returned %s", resp.Status())
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*resty.Response), nil
}
