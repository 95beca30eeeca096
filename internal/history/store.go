// internal/history/store.go
package history

import (
	"context"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"
)

// UpsertResult reports what happened to one write. Inserted=false means a
// record for the reference already existed; the unique constraint on the
// reference column is what enforces at-most-one record per reference.
type UpsertResult struct {
	Inserted bool
	ID       string
}

// Store is the durable payment history collaborator. All writes go through
// Upsert; nothing else in the system touches the table.
type Store interface {
	Upsert(ctx context.Context, rec *models.PaymentHistoryRecord) (UpsertResult, error)
	FindByReference(ctx context.Context, reference string) (*models.PaymentHistoryRecord, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*models.PaymentHistoryRecord, error)
}
