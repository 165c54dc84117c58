package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

const complaintSelect = `
	SELECT c.id, c.station_id, c.customer_name, c.customer_phone, c.category,
		c.description, c.status, c.priority, c.submission_method, c.ip_address,
		c.user_agent, c.created_at, c.updated_at, c.resolved_at, c.deleted_at,
		s.id, s.name, s.location, s.description, s.qr_code_data, s.report_url,
		s.is_active, s.created_at, s.updated_at, s.deleted_at
	FROM complaints c
	JOIN stations s ON s.id = c.station_id`

func scanComplaint(row rowScanner) (*types.Complaint, error) {
	var (
		c                types.Complaint
		s                types.Station
		resolved         sql.NullTime
		deleted          sql.NullTime
		stationDeletedAt sql.NullTime
	)
	if err := row.Scan(
		&c.ID, &c.StationID, &c.CustomerName, &c.CustomerPhone, &c.Category,
		&c.Description, &c.Status, &c.Priority, &c.SubmissionMethod, &c.IPAddress,
		&c.UserAgent, &c.CreatedAt, &c.UpdatedAt, &resolved, &deleted,
		&s.ID, &s.Name, &s.Location, &s.Description, &s.QRCodeData, &s.ReportURL,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt, &stationDeletedAt,
	); err != nil {
		return nil, err
	}
	c.ResolvedAt = nullTime(resolved)
	c.DeletedAt = nullTime(deleted)
	s.DeletedAt = nullTime(stationDeletedAt)
	c.Station = &s
	return &c, nil
}

// SubmitComplaint stores a customer complaint and the admin notification
// announcing it in a single transaction.
// ARCHITECTURAL DISCOVERY: The station check runs inside the transaction so a
// station deactivated between lookup and insert still rejects the submission
func (m *Manager) SubmitComplaint(ctx context.Context, complaint *types.Complaint, notification *types.Notification) error {
	if complaint == nil || notification == nil {
		return fmt.Errorf("%w: complaint and notification are required", types.ErrInvalidComplaint)
	}

	now := m.now()
	if complaint.ID == "" {
		complaint.ID = newID()
	}
	if complaint.Status == "" {
		complaint.Status = types.StatusPending
	}
	if complaint.Priority == "" {
		complaint.Priority = types.PriorityNormal
	}
	if complaint.SubmissionMethod == "" {
		complaint.SubmissionMethod = types.SubmissionQRCode
	}
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	if notification.ID == "" {
		notification.ID = newID()
	}
	if notification.Type == "" {
		notification.Type = types.NotificationNewComplaint
	}
	complaintID := complaint.ID
	notification.ComplaintID = &complaintID
	notification.IsRead = false
	notification.CreatedAt = now

	return m.withTx(ctx, func(tx *sql.Tx) error {
		station, err := scanStation(tx.QueryRowContext(ctx, `
			SELECT `+stationColumns+` FROM stations
			WHERE id = ? AND is_active = 1 AND deleted_at IS NULL`, complaint.StationID))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("station %s: %w", complaint.StationID, interfaces.ErrStationInactive)
		}
		if err != nil {
			return fmt.Errorf("failed to check station: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO complaints (id, station_id, customer_name, customer_phone, category,
				description, status, priority, submission_method, ip_address, user_agent,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			complaint.ID, complaint.StationID, complaint.CustomerName, complaint.CustomerPhone,
			complaint.Category, complaint.Description, complaint.Status, complaint.Priority,
			complaint.SubmissionMethod, complaint.IPAddress, complaint.UserAgent,
			complaint.CreatedAt, complaint.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert complaint: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notifications (id, complaint_id, title, message, type, is_read, created_at)
			VALUES (?, ?, ?, ?, ?, 0, ?)`,
			notification.ID, complaintID, notification.Title, notification.Message,
			notification.Type, notification.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}

		complaint.Station = station
		return nil
	})
}

// GetComplaint returns a non-deleted complaint with its station.
func (m *Manager) GetComplaint(ctx context.Context, id string) (*types.Complaint, error) {
	complaint, err := scanComplaint(m.db.QueryRowContext(ctx,
		complaintSelect+` WHERE c.id = ? AND c.deleted_at IS NULL`, id))
	if err != nil {
		return nil, notFound(err, "complaint", id)
	}
	return complaint, nil
}

// ListComplaints returns one page of complaints, newest first, along with
// the total number of matches across all pages.
func (m *Manager) ListComplaints(ctx context.Context, filter types.ComplaintFilter) ([]*types.Complaint, int, error) {
	where := []string{"c.deleted_at IS NULL"}
	var args []any
	if filter.StationID != "" {
		where = append(where, "c.station_id = ?")
		args = append(args, filter.StationID)
	}
	if filter.Status != "" {
		where = append(where, "c.status = ?")
		args = append(args, filter.Status)
	}
	clause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM complaints c`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter
	page.Limit = limit

	rows, err := m.db.QueryContext(ctx,
		complaintSelect+clause+` ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`,
		append(args, limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	complaints := []*types.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, total, nil
}

// UpdateComplaintStatus applies the non-empty fields of update. Moving to
// resolved stamps resolvedAt.
func (m *Manager) UpdateComplaintStatus(ctx context.Context, id string, update types.StatusUpdate) (*types.Complaint, error) {
	now := m.now()
	var updated *types.Complaint

	err := m.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE complaints
			SET status      = COALESCE(NULLIF(?, ''), status),
			    priority    = COALESCE(NULLIF(?, ''), priority),
			    resolved_at = CASE WHEN ? = 'resolved' THEN ? ELSE resolved_at END,
			    updated_at  = ?
			WHERE id = ? AND deleted_at IS NULL`,
			update.Status, update.Priority, update.Status, now, now, id)
		if err != nil {
			return fmt.Errorf("failed to update complaint: %w", err)
		}
		if err := requireRow(result, "complaint", id); err != nil {
			return err
		}

		updated, err = scanComplaint(tx.QueryRowContext(ctx, complaintSelect+` WHERE c.id = ?`, id))
		if err != nil {
			return fmt.Errorf("failed to reload complaint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteComplaint soft-deletes a complaint.
func (m *Manager) DeleteComplaint(ctx context.Context, id string) error {
	now := m.now()
	return m.executeWrite(ctx, func(db *sql.DB) error {
		result, err := db.ExecContext(ctx, `
			UPDATE complaints SET deleted_at = ?, updated_at = ?
			WHERE id = ? AND deleted_at IS NULL`, now, now, id)
		if err != nil {
			return fmt.Errorf("failed to delete complaint: %w", err)
		}
		return requireRow(result, "complaint", id)
	})
}
