package database

import (
	"context"
	"database/sql"
	"fmt"

	"complaintdesk/pkg/types"
)

const notificationColumns = `id, complaint_id, title, message, type, is_read, created_at, read_at`

func scanNotification(row rowScanner) (*types.Notification, error) {
	var (
		n           types.Notification
		complaintID sql.NullString
		readAt      sql.NullTime
	)
	if err := row.Scan(&n.ID, &complaintID, &n.Title, &n.Message, &n.Type,
		&n.IsRead, &n.CreatedAt, &readAt); err != nil {
		return nil, err
	}
	if complaintID.Valid {
		n.ComplaintID = &complaintID.String
	}
	n.ReadAt = nullTime(readAt)
	return &n, nil
}

// ListNotifications returns the newest notifications first.
func (m *Manager) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]*types.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*types.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// CountUnreadNotifications backs the dashboard badge.
func (m *Manager) CountUnreadNotifications(ctx context.Context) (int, error) {
	var count int
	if err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE is_read = 0`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks one notification read. Marking an already
// read notification keeps its original readAt.
func (m *Manager) MarkNotificationRead(ctx context.Context, id string) (*types.Notification, error) {
	now := m.now()
	var marked *types.Notification

	err := m.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE notifications
			SET is_read = 1, read_at = COALESCE(read_at, ?)
			WHERE id = ?`, now, id)
		if err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}
		if err := requireRow(result, "notification", id); err != nil {
			return err
		}

		marked, err = scanNotification(tx.QueryRowContext(ctx,
			`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id))
		if err != nil {
			return fmt.Errorf("failed to reload notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return marked, nil
}

// MarkAllNotificationsRead returns how many notifications changed.
func (m *Manager) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	now := m.now()
	var changed int64

	err := m.executeWrite(ctx, func(db *sql.DB) error {
		result, err := db.ExecContext(ctx,
			`UPDATE notifications SET is_read = 1, read_at = ? WHERE is_read = 0`, now)
		if err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		changed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
