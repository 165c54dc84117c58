package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbconfig "complaintdesk/pkg/database"
	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

// setupTestDB opens a migrated store on a temp file with a clock that
// advances one second per call, so created_at ordering is deterministic.
func setupTestDB(t *testing.T) *Manager {
	t.Helper()

	config := dbconfig.DefaultConfig()
	config.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	config.RetryDelay = 10 * time.Millisecond

	manager, err := NewManager(config, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	var (
		mu    sync.Mutex
		clock = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	)
	manager.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}

	applied, err := manager.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"001"}, applied)
	return manager
}

func createStation(t *testing.T, m *Manager, name string) *types.Station {
	t.Helper()
	station := &types.Station{
		Name:       name,
		Location:   name + " road",
		QRCodeData: "STATION-" + name,
		ReportURL:  "http://localhost:3000/report/" + name,
		IsActive:   true,
	}
	require.NoError(t, m.CreateStation(context.Background(), station))
	return station
}

func submit(t *testing.T, m *Manager, stationID, name string) (*types.Complaint, *types.Notification) {
	t.Helper()
	complaint := &types.Complaint{
		StationID:     stationID,
		CustomerName:  name,
		CustomerPhone: "08035550100",
		Category:      "service",
		Description:   "the attendant refused to sell diesel",
	}
	notification := &types.Notification{
		Title:   "New Complaint Received",
		Message: "New complaint from " + name,
	}
	require.NoError(t, m.SubmitComplaint(context.Background(), complaint, notification))
	return complaint, notification
}

func TestManager_MigrateIsIdempotent(t *testing.T) {
	m := setupTestDB(t)

	applied, err := m.Migrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestManager_StationLifecycle(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()

	station := createStation(t, m, "ikoyi")
	assert.NotEmpty(t, station.ID)
	assert.False(t, station.CreatedAt.IsZero())

	got, err := m.GetStation(ctx, station.ID)
	require.NoError(t, err)
	assert.Equal(t, "ikoyi", got.Name)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.DeletedAt)

	byCode, err := m.GetStationByQRCode(ctx, "STATION-ikoyi")
	require.NoError(t, err)
	assert.Equal(t, station.ID, byCode.ID)

	got.Name = "ikoyi central"
	got.IsActive = false
	require.NoError(t, m.UpdateStation(ctx, got))

	_, err = m.GetStationByQRCode(ctx, "STATION-ikoyi")
	assert.ErrorIs(t, err, interfaces.ErrNotFound, "inactive stations are not reachable by QR code")

	deleted, err := m.DeleteStation(ctx, station.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
	require.NotNil(t, deleted.DeletedAt)
	assert.Equal(t, "ikoyi central", deleted.Name)

	_, err = m.GetStation(ctx, station.ID)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	_, err = m.DeleteStation(ctx, station.ID)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.ErrorIs(t, m.UpdateStation(ctx, got), interfaces.ErrNotFound)
}

func TestManager_ListActiveStations(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()

	createStation(t, m, "yaba")
	lekki := createStation(t, m, "lekki")
	gone := createStation(t, m, "apapa")
	_, err := m.DeleteStation(ctx, gone.ID)
	require.NoError(t, err)

	stations, err := m.ListActiveStations(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, lekki.ID, stations[0].ID, "newest first")
	assert.Equal(t, "yaba", stations[1].Name)
}

func TestManager_DuplicateQRCodeRejected(t *testing.T) {
	m := setupTestDB(t)
	createStation(t, m, "ikeja")

	dup := &types.Station{Name: "other", QRCodeData: "STATION-ikeja", IsActive: true}
	err := m.CreateStation(context.Background(), dup)
	require.Error(t, err)
	assert.NotErrorIs(t, err, interfaces.ErrNotFound)

	stations, err := m.ListActiveStations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 1)
}

func TestManager_SubmitComplaintWritesBothRecords(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	station := createStation(t, m, "surulere")

	complaint, notification := submit(t, m, station.ID, "Ada")

	assert.Equal(t, types.StatusPending, complaint.Status)
	assert.Equal(t, types.PriorityNormal, complaint.Priority)
	assert.Equal(t, types.SubmissionQRCode, complaint.SubmissionMethod)
	require.NotNil(t, complaint.Station)
	assert.Equal(t, "surulere", complaint.Station.Name)

	require.NotNil(t, notification.ComplaintID)
	assert.Equal(t, complaint.ID, *notification.ComplaintID)
	assert.Equal(t, types.NotificationNewComplaint, notification.Type)

	stored, err := m.GetComplaint(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.CustomerName)
	assert.Equal(t, station.ID, stored.Station.ID)

	notifications, err := m.ListNotifications(ctx, true, 50)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, notification.ID, notifications[0].ID)
}

func TestManager_SubmitComplaintInactiveStation(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()

	station := createStation(t, m, "oshodi")
	station.IsActive = false
	require.NoError(t, m.UpdateStation(ctx, station))

	complaint := &types.Complaint{StationID: station.ID, CustomerName: "Bola"}
	err := m.SubmitComplaint(ctx, complaint, &types.Notification{Title: "t", Message: "m"})
	assert.ErrorIs(t, err, interfaces.ErrStationInactive)

	err = m.SubmitComplaint(ctx, &types.Complaint{StationID: "missing"}, &types.Notification{})
	assert.ErrorIs(t, err, interfaces.ErrStationInactive)

	_, total, err := m.ListComplaints(ctx, types.ComplaintFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	count, err := m.CountUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no notification may outlive a rejected submission")
}

func TestManager_SubmitComplaintRollsBackOnNotificationFailure(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	station := createStation(t, m, "ajah")

	complaint := &types.Complaint{
		StationID:     station.ID,
		CustomerName:  "Chidi",
		CustomerPhone: "08035550100",
		Category:      "safety",
		Description:   "fuel spill near pump two",
	}
	// The type CHECK constraint rejects the notification insert.
	bad := &types.Notification{Title: "x", Message: "y", Type: "sms"}

	require.Error(t, m.SubmitComplaint(ctx, complaint, bad))

	_, err := m.GetComplaint(ctx, complaint.ID)
	assert.ErrorIs(t, err, interfaces.ErrNotFound, "complaint insert must roll back with the notification")
}

func TestManager_ListComplaintsFiltersAndPaging(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	a := createStation(t, m, "alpha")
	b := createStation(t, m, "bravo")

	var ids []string
	for i := 0; i < 5; i++ {
		c, _ := submit(t, m, a.ID, fmt.Sprintf("customer-%d", i))
		ids = append(ids, c.ID)
	}
	submit(t, m, b.ID, "other")

	_, err := m.UpdateComplaintStatus(ctx, ids[0], types.StatusUpdate{Status: types.StatusResolved})
	require.NoError(t, err)

	all, total, err := m.ListComplaints(ctx, types.ComplaintFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, all, 6)
	assert.Equal(t, "other", all[0].CustomerName, "newest first")

	page2, total, err := m.ListComplaints(ctx, types.ComplaintFilter{StationID: a.ID, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page2, 2)
	assert.Equal(t, ids[2], page2[0].ID)
	assert.Equal(t, ids[1], page2[1].ID)

	resolved, total, err := m.ListComplaints(ctx, types.ComplaintFilter{Status: types.StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, resolved, 1)
	assert.Equal(t, ids[0], resolved[0].ID)
}

func TestManager_UpdateComplaintStatus(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	station := createStation(t, m, "festac")
	complaint, _ := submit(t, m, station.ID, "Dayo")

	updated, err := m.UpdateComplaintStatus(ctx, complaint.ID, types.StatusUpdate{Priority: types.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, updated.Status, "empty status leaves the stored value")
	assert.Equal(t, types.PriorityHigh, updated.Priority)
	assert.Nil(t, updated.ResolvedAt)

	updated, err = m.UpdateComplaintStatus(ctx, complaint.ID, types.StatusUpdate{Status: types.StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, types.StatusResolved, updated.Status)
	assert.Equal(t, types.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.UpdatedAt.After(complaint.CreatedAt))
	require.NotNil(t, updated.Station)

	_, err = m.UpdateComplaintStatus(ctx, "missing", types.StatusUpdate{Status: types.StatusClosed})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestManager_DeleteComplaintIsSoft(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	station := createStation(t, m, "agege")
	complaint, _ := submit(t, m, station.ID, "Efe")

	require.NoError(t, m.DeleteComplaint(ctx, complaint.ID))

	_, err := m.GetComplaint(ctx, complaint.ID)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.ErrorIs(t, m.DeleteComplaint(ctx, complaint.ID), interfaces.ErrNotFound)

	var deletedAt sql.NullTime
	require.NoError(t, m.GetDB().QueryRow(
		`SELECT deleted_at FROM complaints WHERE id = ?`, complaint.ID).Scan(&deletedAt))
	assert.True(t, deletedAt.Valid, "row is kept with deleted_at set")

	_, err = m.UpdateComplaintStatus(ctx, complaint.ID, types.StatusUpdate{Status: types.StatusClosed})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestManager_NotificationsReadState(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()
	station := createStation(t, m, "ikorodu")

	_, first := submit(t, m, station.ID, "Femi")
	submit(t, m, station.ID, "Gbenga")
	submit(t, m, station.ID, "Halima")

	count, err := m.CountUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	marked, err := m.MarkNotificationRead(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)
	require.NotNil(t, marked.ReadAt)
	firstReadAt := *marked.ReadAt

	again, err := m.MarkNotificationRead(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, firstReadAt.Equal(*again.ReadAt), "re-marking keeps the original readAt")

	unread, err := m.ListNotifications(ctx, true, 50)
	require.NoError(t, err)
	assert.Len(t, unread, 2)
	assert.Contains(t, unread[0].Message, "Halima", "newest first")

	changed, err := m.MarkAllNotificationsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	count, err = m.CountUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	all, err := m.ListNotifications(ctx, false, 2)
	require.NoError(t, err)
	assert.Len(t, all, 2, "limit is honoured")

	_, err = m.MarkNotificationRead(ctx, "missing")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestManager_ConcurrentWritesAreSerialized(t *testing.T) {
	m := setupTestDB(t)
	station := createStation(t, m, "obalende")

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			complaint := &types.Complaint{
				StationID:     station.ID,
				CustomerName:  fmt.Sprintf("writer-%d", i),
				CustomerPhone: "08035550100",
				Category:      "service",
				Description:   "queue was not moving for an hour",
			}
			errs <- m.SubmitComplaint(context.Background(), complaint,
				&types.Notification{Title: "New Complaint Received", Message: "m"})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	_, total, err := m.ListComplaints(context.Background(), types.ComplaintFilter{})
	require.NoError(t, err)
	assert.Equal(t, writers, total)
}

func TestManager_HealthCheckAndClose(t *testing.T) {
	m := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, m.HealthCheck(ctx))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close is idempotent")

	err := m.CreateStation(ctx, &types.Station{Name: "late", QRCodeData: "late"})
	assert.ErrorIs(t, err, ErrManagerClosed)
}

func TestManager_WriteRespectsCanceledContext(t *testing.T) {
	m := setupTestDB(t)

	// Hold the writer so the next operation cannot be accepted.
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = m.executeWrite(context.Background(), func(*sql.DB) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	// Fill the queue so the send blocks.
	for i := 0; i < cap(m.writeChannel); i++ {
		m.writeChannel <- writeOperation{ctx: context.Background(), operation: func(*sql.DB) error { return nil }, result: make(chan error, 1)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.CreateStation(ctx, &types.Station{Name: "blocked", QRCodeData: "blocked"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_CloseAnswersQueuedWrites(t *testing.T) {
	m := setupTestDB(t)

	release := make(chan struct{})
	started := make(chan struct{})
	slowDone := make(chan error, 1)
	go func() {
		slowDone <- m.executeWrite(context.Background(), func(*sql.DB) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	var ran atomic.Bool
	queuedDone := make(chan error, 1)
	go func() {
		queuedDone <- m.executeWrite(context.Background(), func(*sql.DB) error {
			ran.Store(true)
			return nil
		})
	}()
	require.Eventually(t, func() bool { return len(m.writeChannel) == 1 }, 2*time.Second, 5*time.Millisecond)

	closeDone := make(chan error, 1)
	go func() { closeDone <- m.Close() }()
	require.Eventually(t, func() bool {
		select {
		case <-m.shutdown:
			return true
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
	close(release)

	select {
	case err := <-queuedDone:
		assert.ErrorIs(t, err, ErrManagerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("queued write was stranded by Close")
	}
	assert.False(t, ran.Load(), "queued write must not run after shutdown")
	assert.NoError(t, <-slowDone, "the in-flight write completes")
	assert.NoError(t, <-closeDone)
}

func TestManager_WriteAfterStopReturnsClosed(t *testing.T) {
	m := setupTestDB(t)
	require.NoError(t, m.Close())

	err := m.CreateStation(context.Background(), &types.Station{Name: "late", QRCodeData: "late"})
	assert.ErrorIs(t, err, ErrManagerClosed)
}

func TestManager_RetryWaitStopsOnCancel(t *testing.T) {
	m := setupTestDB(t)
	m.config.RetryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- m.executeWrite(ctx, func(*sql.DB) error {
			if attempts.Add(1) == 1 {
				cancel()
			}
			return errors.New("database is locked")
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("retry wait ignored the canceled context")
	}
	assert.Equal(t, int32(1), attempts.Load())

	// The writer is free for the next operation.
	createStation(t, m, "after-retry")
}

func TestManager_RetryRecoversTransientFailure(t *testing.T) {
	m := setupTestDB(t)

	var attempts atomic.Int32
	err := m.executeWrite(context.Background(), func(*sql.DB) error {
		if attempts.Add(1) == 1 {
			return errors.New("database is locked")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestNewManager_InvalidPath(t *testing.T) {
	config := dbconfig.DefaultConfig()
	config.DatabasePath = "/nonexistent/dir/complaints.db"

	_, err := NewManager(config, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewManager_InvalidConfig(t *testing.T) {
	config := dbconfig.DefaultConfig()
	config.MaxConnections = 0

	_, err := NewManager(config, zerolog.Nop())
	assert.Error(t, err)
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(fmt.Errorf("x: %w", interfaces.ErrNotFound)))
	assert.False(t, retryable(interfaces.ErrStationInactive))
	assert.False(t, retryable(context.DeadlineExceeded))
	assert.True(t, retryable(fmt.Errorf("database is locked")))
}
