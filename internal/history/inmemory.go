// internal/history/inmemory.go
package history

import (
	"context"
	"sort"
	"sync"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
)

// InMemoryStore is the Store used by tests and local development runs.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]*models.PaymentHistoryRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*models.PaymentHistoryRecord)}
}

func (s *InMemoryStore) Upsert(_ context.Context, rec *models.PaymentHistoryRecord) (UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.Reference]; ok {
		return UpsertResult{Inserted: false, ID: existing.ID}, nil
	}
	clone := *rec
	s.records[rec.Reference] = &clone
	return UpsertResult{Inserted: true, ID: rec.ID}, nil
}

func (s *InMemoryStore) FindByReference(_ context.Context, reference string) (*models.PaymentHistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[reference]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID string) ([]*models.PaymentHistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*models.PaymentHistoryRecord
	for _, rec := range s.records {
		if rec.TenantID == tenantID {
			clone := *rec
			records = append(records, &clone)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Len reports the number of stored records; used by tests to assert the
// one-record-per-reference invariant.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
