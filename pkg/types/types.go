package types

import (
	"time"
)

// Complaint status values. The dashboard filters on these literally.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Complaint priority values
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Submission channels
const (
	SubmissionQRCode    = "qr_code"
	SubmissionVoiceCall = "voice_call"
)

// Notification types
const (
	NotificationNewComplaint = "new_complaint"
	NotificationStatusUpdate = "status_update"
	NotificationSystem       = "system"
)

// Admin role carried in handshake and API credentials
const RoleAdmin = "admin"

// Station is a physical location customers report against via its QR code.
// Deleted stations are kept with DeletedAt set and IsActive false.
type Station struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	QRCodeData  string     `json:"qrCodeData"`
	ReportURL   string     `json:"reportUrl,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Complaint is one customer submission. Station is populated on reads
// so that dashboard consumers do not need a second lookup.
type Complaint struct {
	ID               string     `json:"id"`
	StationID        string     `json:"stationId"`
	CustomerName     string     `json:"customerName"`
	CustomerPhone    string     `json:"customerPhone"`
	Category         string     `json:"category"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	SubmissionMethod string     `json:"submissionMethod"`
	IPAddress        string     `json:"ipAddress,omitempty"`
	UserAgent        string     `json:"userAgent,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ResolvedAt       *time.Time `json:"resolvedAt,omitempty"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
	Station          *Station   `json:"station,omitempty"`
}

// Notification is an admin-facing record created alongside write events.
type Notification struct {
	ID          string     `json:"id"`
	ComplaintID *string    `json:"complaintId,omitempty"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	IsRead      bool       `json:"isRead"`
	CreatedAt   time.Time  `json:"createdAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

// ComplaintFilter narrows complaint listings. Zero values mean "any".
type ComplaintFilter struct {
	StationID string
	Status    string
	Page      int
	Limit     int
}

// Offset returns the row offset for the filter's page.
func (f ComplaintFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// StatusUpdate carries the mutable triage fields of a complaint.
// Empty strings leave the stored value unchanged.
type StatusUpdate struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending in-progress resolved closed"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}
