package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pasteflow/pasteflow/internal/common"
	"github.com/pasteflow/pasteflow/internal/model"
)

// ProgressCallback reports bulk-insert progress to the caller.
type ProgressCallback func(done, total int)

// SaveImport persists one accepted paste-import and its line items in a
// single transaction, returning the new record's ULID. progress may be nil.
func (s *SQLiteStorage) SaveImport(ctx context.Context, rec model.ImportRecord, rows []model.ParsedRow, progress ProgressCallback) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	id := rec.ID
	if id == "" {
		id = ulid.Make().String()
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, created_at, source_format, confidence, row_count, skipped, auto_applied, fixes_applied)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, rec.SourceFormat, rec.Confidence, len(rows), rec.Skipped,
		boolToInt(rec.AutoApplied), boolToInt(rec.FixesApplied),
	); err != nil {
		return "", fmt.Errorf("failed to insert import record: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO line_items (import_id, position, part_name, description, quantity, unit, unit_price, currency)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare line item insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, id, i, row.PartName, row.Description,
			row.Quantity, row.Unit, row.UnitPrice, row.Currency); err != nil {
			return "", fmt.Errorf("failed to insert line item %d: %w", i, err)
		}
		if progress != nil {
			progress(i+1, len(rows))
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}
	return id, nil
}

// ListImports returns the most recent import records, newest first.
func (s *SQLiteStorage) ListImports(ctx context.Context, limit int) ([]model.ImportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source_format, confidence, row_count, skipped, auto_applied, fixes_applied
		 FROM imports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ImportRecord
	for rows.Next() {
		var rec model.ImportRecord
		var autoApplied, fixesApplied int
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.SourceFormat, &rec.Confidence,
			&rec.RowCount, &rec.Skipped, &autoApplied, &fixesApplied); err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		rec.AutoApplied = autoApplied != 0
		rec.FixesApplied = fixesApplied != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate imports: %w", err)
	}
	return records, nil
}

// GetImportRows returns the line items of one import in saved order.
func (s *SQLiteStorage) GetImportRows(ctx context.Context, importID string) ([]model.ParsedRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if importID == "" {
		return nil, fmt.Errorf("importID must not be empty")
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM imports WHERE id = ?`, importID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up import: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("import %s: %w", importID, common.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT part_name, description, quantity, unit, unit_price, currency
		 FROM line_items WHERE import_id = ? ORDER BY position`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ParsedRow
	for rows.Next() {
		var item model.ParsedRow
		var desc, unit, currency sql.NullString
		if err := rows.Scan(&item.PartName, &desc, &item.Quantity, &unit, &item.UnitPrice, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		item.Description = desc.String
		item.Unit = unit.String
		item.Currency = currency.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return items, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
