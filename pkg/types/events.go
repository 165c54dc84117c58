package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire event names. These are a name-stable contract with dashboard clients.
const (
	EventJoinAdmin  = "join-admin"
	EventLeaveAdmin = "leave-admin"

	EventNewComplaint    = "new-complaint"
	EventComplaintUpdate = "complaint-update"
	EventStationUpdate   = "station-update"
	EventNotification    = "notification"
)

// AdminRoom is the broadcast group every joined admin session belongs to.
const AdminRoom = "admin-room"

// StationAction describes which mutation a station-update reports.
type StationAction string

const (
	StationCreated StationAction = "created"
	StationUpdated StationAction = "updated"
	StationDeleted StationAction = "deleted"
)

// Frame is the envelope for every message on the transport, in both
// directions. Data stays raw so the payload structure survives untouched.
type Frame struct {
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data,omitempty"`
	SentAt time.Time       `json:"sentAt"`
}

// NewFrame marshals payload into a frame stamped with the current time.
// A nil payload produces a frame without data.
func NewFrame(event string, payload any) (*Frame, error) {
	frame := &Frame{Event: event, SentAt: time.Now().UTC()}
	if payload == nil {
		return frame, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	frame.Data = data
	return frame, nil
}

// Decode unmarshals the frame payload into v.
func (f *Frame) Decode(v any) error {
	if len(f.Data) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(f.Data, v)
}

// IsServerEvent reports whether name is one of the server→client broadcasts.
func IsServerEvent(name string) bool {
	switch name {
	case EventNewComplaint, EventComplaintUpdate, EventStationUpdate, EventNotification:
		return true
	default:
		return false
	}
}

// ComplaintSnapshot is the new-complaint payload: enough for a dashboard
// toast, with the full record left to a re-fetch.
type ComplaintSnapshot struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Category     string    `json:"category"`
	StationID    string    `json:"stationId"`
	StationName  string    `json:"stationName"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SnapshotOf builds the new-complaint payload for c.
func SnapshotOf(c *Complaint) ComplaintSnapshot {
	snap := ComplaintSnapshot{
		ID:           c.ID,
		CustomerName: c.CustomerName,
		Category:     c.Category,
		StationID:    c.StationID,
		Status:       c.Status,
		Priority:     c.Priority,
		CreatedAt:    c.CreatedAt,
	}
	if c.Station != nil {
		snap.StationName = c.Station.Name
	}
	return snap
}

// StationUpdatePayload is the station-update payload.
type StationUpdatePayload struct {
	Action  StationAction `json:"action"`
	Station *Station      `json:"station"`
}
