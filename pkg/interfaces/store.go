package interfaces

import (
	"context"

	"complaintdesk/pkg/types"
)

//go:generate go run go.uber.org/mock/mockgen -destination=../../internal/mocks/mock_store.go -package=mocks complaintdesk/pkg/interfaces Store

// Store handles all persistence for the write path.
// ARCHITECTURAL DISCOVERY: Every mutating method returns only after the
// write committed, so callers can publish on a nil error
type Store interface {
	// Station operations
	CreateStation(ctx context.Context, station *types.Station) error
	UpdateStation(ctx context.Context, station *types.Station) error
	// DeleteStation soft-deletes and deactivates, returning the final row
	DeleteStation(ctx context.Context, id string) (*types.Station, error)
	GetStation(ctx context.Context, id string) (*types.Station, error)
	GetStationByQRCode(ctx context.Context, code string) (*types.Station, error)
	ListActiveStations(ctx context.Context) ([]*types.Station, error)

	// Complaint operations

	// SubmitComplaint inserts the complaint and its notification in one
	// transaction. ErrStationInactive if the station cannot take submissions.
	SubmitComplaint(ctx context.Context, complaint *types.Complaint, notification *types.Notification) error
	GetComplaint(ctx context.Context, id string) (*types.Complaint, error)
	ListComplaints(ctx context.Context, filter types.ComplaintFilter) ([]*types.Complaint, int, error)
	UpdateComplaintStatus(ctx context.Context, id string, update types.StatusUpdate) (*types.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) error

	// Notification operations
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]*types.Notification, error)
	CountUnreadNotifications(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string) (*types.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) (int64, error)

	// HealthCheck verifies database connectivity
	HealthCheck(ctx context.Context) error
	Close() error
}
