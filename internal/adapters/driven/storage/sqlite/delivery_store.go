package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
)

// deliveryStore implements driven.DeliveryStore.
type deliveryStore struct {
	store *Store
}

var _ driven.DeliveryStore = (*deliveryStore)(nil)

const deliveryColumns = `id, name, carrier, tracking_number, manual_delivery_date, debug, created_at`

// List returns all deliveries in list order.
func (s *deliveryStore) List(ctx context.Context) ([]domain.Delivery, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := []domain.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliveries: %w", err)
	}
	return deliveries, nil
}

// Save replaces the whole list in one transaction.
func (s *deliveryStore) Save(ctx context.Context, deliveries []domain.Delivery) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM deliveries"); err != nil {
		return fmt.Errorf("clearing deliveries: %w", err)
	}
	for i, d := range deliveries {
		if d.ID == "" {
			return fmt.Errorf("delivery at position %d has no id: %w", i, domain.ErrInvalidInput)
		}
		if err := insertDelivery(ctx, tx, d, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deliveries: %w", err)
	}
	return nil
}

// Add appends a delivery. An existing delivery with the same ID is
// updated in place and keeps its position.
func (s *deliveryStore) Add(ctx context.Context, delivery domain.Delivery) error {
	if delivery.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO deliveries (id, position, name, carrier, tracking_number, manual_delivery_date, debug, created_at)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM deliveries), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			carrier = excluded.carrier,
			tracking_number = excluded.tracking_number,
			manual_delivery_date = excluded.manual_delivery_date,
			debug = excluded.debug,
			created_at = excluded.created_at
	`, delivery.ID, delivery.Name, delivery.Carrier, delivery.TrackingNumber,
		formatOptionalTime(delivery.ManualDeliveryDate), boolToInt(delivery.Debug),
		formatTime(delivery.CreatedAt))
	if err != nil {
		return fmt.Errorf("adding delivery: %w", err)
	}
	return nil
}

// Get retrieves a delivery by ID.
func (s *deliveryStore) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = ?`, id)

	d, err := scanDelivery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Remove deletes a delivery by ID.
func (s *deliveryStore) Remove(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM deliveries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("removing delivery: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing delivery: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertDelivery(ctx context.Context, tx *sql.Tx, d domain.Delivery, position int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO deliveries (id, position, name, carrier, tracking_number, manual_delivery_date, debug, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, position, d.Name, d.Carrier, d.TrackingNumber,
		formatOptionalTime(d.ManualDeliveryDate), boolToInt(d.Debug), formatTime(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting delivery %s: %w", d.ID, err)
	}
	return nil
}

// scanDelivery scans one delivery row. sql.ErrNoRows is returned unwrapped.
func scanDelivery(row scanner) (*domain.Delivery, error) {
	var d domain.Delivery
	var manualDate sql.NullString
	var debug int
	var createdAt string

	if err := row.Scan(&d.ID, &d.Name, &d.Carrier, &d.TrackingNumber,
		&manualDate, &debug, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning delivery: %w", err)
	}

	if t := parseNullableTime(manualDate); !t.IsZero() {
		d.ManualDeliveryDate = &t
	}
	d.Debug = debug == 1
	d.CreatedAt = parseTime(createdAt)

	return &d, nil
}

// formatOptionalTime formats a time pointer, or returns nil when unset.
func formatOptionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
