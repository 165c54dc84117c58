package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ComplaintListResponse struct {
	Complaints []*types.Complaint `json:"complaints"`
	Pagination Pagination         `json:"pagination"`
}

type SubmitComplaintResponse struct {
	Message   string           `json:"message"`
	Complaint *types.Complaint `json:"complaint"`
}

// GET /api/complaints
func (s *Server) listComplaints(c *gin.Context) {
	filter, err := parseComplaintFilter(c)
	if err != nil {
		s.fail(c, err, "")
		return
	}

	complaints, total, err := s.store.ListComplaints(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, ComplaintListResponse{
		Complaints: complaints,
		Pagination: Pagination{
			Total: total,
			Page:  filter.Page,
			Limit: filter.Limit,
			Pages: (total + filter.Limit - 1) / filter.Limit,
		},
	})
}

// parseComplaintFilter reads stationId, status, page and limit. Limits
// above the maximum are clamped rather than rejected.
func parseComplaintFilter(c *gin.Context) (types.ComplaintFilter, error) {
	filter := types.ComplaintFilter{
		StationID: c.Query("stationId"),
		Status:    c.Query("status"),
		Page:      1,
		Limit:     defaultPageLimit,
	}
	if filter.Status != "" && !types.IsValidStatus(filter.Status) {
		return filter, invalidRequest("unknown status %q", filter.Status)
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, invalidRequest("page must be a positive integer")
		}
		filter.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, invalidRequest("limit must be a positive integer")
		}
		filter.Limit = min(limit, maxPageLimit)
	}
	return filter, nil
}

// GET /api/complaints/:id
func (s *Server) getComplaint(c *gin.Context) {
	complaint, err := s.store.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Complaint not found")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// POST /api/complaints
// ARCHITECTURAL DISCOVERY: Complaint and notification commit together, so
// both events describe rows that exist
func (s *Server) submitComplaint(c *gin.Context) {
	var req types.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(c, err, "")
		return
	}

	ctx := c.Request.Context()
	station, err := s.store.GetStation(ctx, req.StationID)
	if err != nil || !station.IsActive {
		if err == nil {
			err = interfaces.ErrStationInactive
		}
		s.fail(c, err, "Station not found or inactive")
		return
	}

	complaint := &types.Complaint{
		StationID:        req.StationID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		Category:         req.Category,
		Description:      req.Description,
		Status:           types.StatusPending,
		Priority:         types.PriorityNormal,
		SubmissionMethod: types.SubmissionQRCode,
		IPAddress:        c.ClientIP(),
		UserAgent:        c.Request.UserAgent(),
	}
	notification := &types.Notification{
		Title:   "New Complaint Received",
		Message: "New complaint from " + req.CustomerName + " at " + station.Name,
		Type:    types.NotificationNewComplaint,
	}

	if err := s.store.SubmitComplaint(ctx, complaint, notification); err != nil {
		s.fail(c, err, "Station not found or inactive")
		return
	}
	if complaint.Station == nil {
		complaint.Station = station
	}

	s.publisher.PublishNewComplaint(complaint)
	s.publisher.PublishNotification(notification)

	c.JSON(http.StatusCreated, SubmitComplaintResponse{
		Message:   "Complaint submitted successfully",
		Complaint: complaint,
	})
}

// PATCH /api/complaints/:id/status
func (s *Server) updateComplaintStatus(c *gin.Context) {
	var update types.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := update.Validate(); err != nil {
		s.fail(c, err, "")
		return
	}

	complaint, err := s.store.UpdateComplaintStatus(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		s.fail(c, err, "Complaint not found")
		return
	}

	s.publisher.PublishComplaintUpdate(complaint)
	c.JSON(http.StatusOK, complaint)
}

// DELETE /api/complaints/:id
// Deletion is not broadcast; dashboards drop the row on their next fetch.
func (s *Server) deleteComplaint(c *gin.Context) {
	if err := s.store.DeleteComplaint(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err, "Complaint not found")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Complaint deleted successfully"})
}
