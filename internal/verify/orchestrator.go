// internal/verify/orchestrator.go
package verify

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
	"github.com/RainerNsa/PhCityRent-sub000/internal/providers"
	"github.com/RainerNsa/PhCityRent-sub000/internal/retry"
)

// ErrMissingReference is the terminal error for a callback that carried no
// transaction reference. No gateway is contacted in that case.
var ErrMissingReference = errors.New("transaction reference is required")

// Orchestrator turns a raw callback (reference + claimed provider) into a
// trustworthy terminal outcome. Per reference it runs at most one
// verification sequence at a time: overlapping triggers wait for the first
// run, and re-triggers after a success or decline get the cached outcome
// without new network calls. The claimed status on the callback is never
// consulted.
type Orchestrator struct {
	registry    *providers.Registry
	maxAttempts int
	retryDelay  time.Duration

	// OnRetry observes each failed retryable attempt. Defaults to a log
	// line when nil.
	OnRetry func(reference string, attempt int, err error)

	mu   sync.Mutex
	runs map[string]*run
}

type run struct {
	done    chan struct{}
	outcome *models.VerificationOutcome
}

func New(registry *providers.Registry, maxAttempts int, retryDelay time.Duration) *Orchestrator {
	if maxAttempts <= 0 {
		maxAttempts = retry.DefaultMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = retry.DefaultDelay
	}
	return &Orchestrator{
		registry:    registry,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		runs:        make(map[string]*run),
	}
}

// Verify resolves reference to a terminal outcome: success, failed or
// error. Success and failed outcomes are cached for the orchestrator's
// lifetime; an errored outcome is dropped so a later trigger can try the
// gateway again.
func (o *Orchestrator) Verify(ctx context.Context, reference, providerHint string) *models.VerificationOutcome {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		log.Println("WARN: Verification requested without a transaction reference.")
		return &models.VerificationOutcome{
			Status: models.StatusErrored,
			Err:    ErrMissingReference.Error(),
		}
	}

	o.mu.Lock()
	if r, ok := o.runs[reference]; ok {
		o.mu.Unlock()
		<-r.done
		return r.outcome
	}
	r := &run{done: make(chan struct{})}
	o.runs[reference] = r
	o.mu.Unlock()

	r.outcome = o.verify(ctx, reference, providerHint)
	if r.outcome.Status == models.StatusErrored {
		// An errored outcome is an invitation to check again, not an
		// answer. Forget the run so the next trigger re-verifies.
		o.mu.Lock()
		delete(o.runs, reference)
		o.mu.Unlock()
	}
	close(r.done)
	return r.outcome
}

func (o *Orchestrator) verify(ctx context.Context, reference, providerHint string) *models.VerificationOutcome {
	adapter := o.registry.Resolve(reference, providerHint)
	log.Printf("INFO: Verifying reference '%s' via %s", reference, adapter.Name())

	attempts := 0
	result, err := retry.Do(ctx, retry.Config{
		MaxAttempts: o.maxAttempts,
		Delay:       o.retryDelay,
		OnAttemptFailed: func(attempt int, err error) {
			o.observeRetry(reference, attempt, err)
		},
	}, func(ctx context.Context) (*models.VerificationResult, error) {
		attempts++
		res, err := adapter.Verify(ctx, reference)
		if err != nil {
			var declined *providers.DeclinedError
			if errors.As(err, &declined) {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return res, nil
	})

	if err != nil {
		var declined *providers.DeclinedError
		if errors.As(err, &declined) {
			log.Printf("INFO: Payment declined for reference '%s' after %d attempt(s): %v", reference, attempts, err)
			return &models.VerificationOutcome{
				Reference: reference,
				Provider:  adapter.Name(),
				Status:    models.StatusFailed,
				Attempts:  attempts,
				Err:       err.Error(),
			}
		}
		log.Printf("ERROR: Verification errored for reference '%s' after %d attempt(s): %v", reference, attempts, err)
		return &models.VerificationOutcome{
			Reference: reference,
			Provider:  adapter.Name(),
			Status:    models.StatusErrored,
			Attempts:  attempts,
			Err:       err.Error(),
		}
	}

	log.Printf("INFO: Verification succeeded for reference '%s' after %d attempt(s)", reference, attempts)
	return &models.VerificationOutcome{
		Reference: reference,
		Provider:  adapter.Name(),
		Status:    models.StatusSuccess,
		Result:    result,
		Attempts:  attempts,
	}
}

func (o *Orchestrator) observeRetry(reference string, attempt int, err error) {
	if o.OnRetry != nil {
		o.OnRetry(reference, attempt, err)
		return
	}
	log.Printf("WARN: Verification attempt %d failed for reference '%s': %v", attempt, reference, err)
}
