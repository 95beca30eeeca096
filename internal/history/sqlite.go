// internal/history/sqlite.go
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists payment history in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS payment_history (
			id TEXT PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			tenant_id TEXT NOT NULL DEFAULT '',
			property_id TEXT NOT NULL DEFAULT '',
			amount_minor INTEGER NOT NULL,
			fee_minor INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			channel TEXT NOT NULL DEFAULT '',
			provider TEXT NOT NULL DEFAULT '',
			provider_tx_id TEXT NOT NULL DEFAULT '',
			payment_items TEXT NOT NULL DEFAULT '[]',
			metadata TEXT NOT NULL DEFAULT '{}',
			customer_email TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			property_title TEXT NOT NULL DEFAULT '',
			property_location TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_payment_history_tenant ON payment_history(tenant_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return nil
}

// Upsert inserts the record unless its reference is already present; a
// duplicate is reported as Inserted=false with the existing row's id, never
// as an error.
func (s *SQLiteStore) Upsert(ctx context.Context, rec *models.PaymentHistoryRecord) (UpsertResult, error) {
	items, err := json.Marshal(rec.PaymentItems)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("failed to encode payment items: %w", err)
	}
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("failed to encode metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_history (
			id, reference, tenant_id, property_id, amount_minor, fee_minor,
			status, channel, provider, provider_tx_id, payment_items, metadata,
			customer_email, customer_name, customer_phone,
			property_title, property_location, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(reference) DO NOTHING`,
		rec.ID, rec.Reference, rec.TenantID, rec.PropertyID, rec.AmountMinor, rec.FeeMinor,
		rec.Status, rec.Channel, rec.Provider, rec.ProviderTxID, string(items), string(meta),
		rec.CustomerEmail, rec.CustomerName, rec.CustomerPhone,
		rec.PropertyTitle, rec.PropertyLocation, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("failed to insert history record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return UpsertResult{}, err
	}
	if affected == 0 {
		var existingID string
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM payment_history WHERE reference = ?`, rec.Reference).Scan(&existingID)
		if err != nil {
			return UpsertResult{}, fmt.Errorf("failed to load existing record: %w", err)
		}
		return UpsertResult{Inserted: false, ID: existingID}, nil
	}
	return UpsertResult{Inserted: true, ID: rec.ID}, nil
}

func (s *SQLiteStore) FindByReference(ctx context.Context, reference string) (*models.PaymentHistoryRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE reference = ?`, reference)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (s *SQLiteStore) ListByTenant(ctx context.Context, tenantID string) ([]*models.PaymentHistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE tenant_id = ? ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer rows.Close()

	var records []*models.PaymentHistoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

const selectColumns = `
	SELECT id, reference, tenant_id, property_id, amount_minor, fee_minor,
		status, channel, provider, provider_tx_id, payment_items, metadata,
		customer_email, customer_name, customer_phone,
		property_title, property_location, created_at
	FROM payment_history`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.PaymentHistoryRecord, error) {
	var rec models.PaymentHistoryRecord
	var items, meta string
	var createdAt time.Time

	err := row.Scan(
		&rec.ID, &rec.Reference, &rec.TenantID, &rec.PropertyID, &rec.AmountMinor, &rec.FeeMinor,
		&rec.Status, &rec.Channel, &rec.Provider, &rec.ProviderTxID, &items, &meta,
		&rec.CustomerEmail, &rec.CustomerName, &rec.CustomerPhone,
		&rec.PropertyTitle, &rec.PropertyLocation, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = createdAt
	if err := json.Unmarshal([]byte(items), &rec.PaymentItems); err != nil {
		return nil, fmt.Errorf("failed to decode payment items: %w", err)
	}
	if err := json.Unmarshal([]byte(meta), &rec.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &rec, nil
}
