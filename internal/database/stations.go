package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

const stationColumns = `id, name, location, description, qr_code_data, report_url,
	is_active, created_at, updated_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*types.Station, error) {
	var (
		s       types.Station
		deleted sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Location, &s.Description, &s.QRCodeData,
		&s.ReportURL, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &deleted); err != nil {
		return nil, err
	}
	s.DeletedAt = nullTime(deleted)
	return &s, nil
}

// CreateStation inserts a new station. ID and timestamps are filled in
// when the caller leaves them empty.
func (m *Manager) CreateStation(ctx context.Context, station *types.Station) error {
	if station == nil {
		return fmt.Errorf("%w: nil station", types.ErrInvalidStation)
	}
	now := m.now()
	if station.ID == "" {
		station.ID = newID()
	}
	station.CreatedAt = now
	station.UpdatedAt = now

	return m.executeWrite(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO stations (`+stationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			station.ID, station.Name, station.Location, station.Description,
			station.QRCodeData, station.ReportURL, station.IsActive,
			station.CreatedAt, station.UpdatedAt, station.DeletedAt)
		if err != nil {
			return fmt.Errorf("failed to create station: %w", err)
		}
		return nil
	})
}

// UpdateStation writes name, location, description and the active flag.
// Deleted stations are treated as missing.
func (m *Manager) UpdateStation(ctx context.Context, station *types.Station) error {
	if station == nil {
		return fmt.Errorf("%w: nil station", types.ErrInvalidStation)
	}
	station.UpdatedAt = m.now()

	return m.executeWrite(ctx, func(db *sql.DB) error {
		result, err := db.ExecContext(ctx, `
			UPDATE stations
			SET name = ?, location = ?, description = ?, is_active = ?, updated_at = ?
			WHERE id = ? AND deleted_at IS NULL`,
			station.Name, station.Location, station.Description, station.IsActive,
			station.UpdatedAt, station.ID)
		if err != nil {
			return fmt.Errorf("failed to update station: %w", err)
		}
		return requireRow(result, "station", station.ID)
	})
}

// DeleteStation soft-deletes the station and returns its final state.
func (m *Manager) DeleteStation(ctx context.Context, id string) (*types.Station, error) {
	now := m.now()
	var deleted *types.Station

	err := m.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE stations
			SET is_active = 0, deleted_at = ?, updated_at = ?
			WHERE id = ? AND deleted_at IS NULL`, now, now, id)
		if err != nil {
			return fmt.Errorf("failed to delete station: %w", err)
		}
		if err := requireRow(result, "station", id); err != nil {
			return err
		}

		deleted, err = scanStation(tx.QueryRowContext(ctx,
			`SELECT `+stationColumns+` FROM stations WHERE id = ?`, id))
		if err != nil {
			return fmt.Errorf("failed to reload station: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// GetStation returns a non-deleted station, active or not.
func (m *Manager) GetStation(ctx context.Context, id string) (*types.Station, error) {
	station, err := scanStation(m.db.QueryRowContext(ctx,
		`SELECT `+stationColumns+` FROM stations WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, notFound(err, "station", id)
	}
	return station, nil
}

// GetStationByQRCode resolves the QR payload scanned by a customer.
// Only active stations are returned.
func (m *Manager) GetStationByQRCode(ctx context.Context, code string) (*types.Station, error) {
	station, err := scanStation(m.db.QueryRowContext(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE qr_code_data = ? AND is_active = 1 AND deleted_at IS NULL`, code))
	if err != nil {
		return nil, notFound(err, "station with qr code", code)
	}
	return station, nil
}

// ListActiveStations returns active, non-deleted stations, newest first.
func (m *Manager) ListActiveStations(ctx context.Context) ([]*types.Station, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE is_active = 1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := []*types.Station{}
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stations: %w", err)
	}
	return stations, nil
}

// notFound maps sql.ErrNoRows onto the store sentinel.
func notFound(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, interfaces.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", kind, err)
}

func requireRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, interfaces.ErrNotFound)
	}
	return nil
}
