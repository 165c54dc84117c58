package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const notificationPageSize = 50

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// GET /api/notifications
func (s *Server) listNotifications(c *gin.Context) {
	unreadOnly := c.Query("unreadOnly") == "true"
	notifications, err := s.store.ListNotifications(c.Request.Context(), unreadOnly, notificationPageSize)
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// GET /api/notifications/unread-count
func (s *Server) unreadCount(c *gin.Context) {
	count, err := s.store.CountUnreadNotifications(c.Request.Context())
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// PATCH /api/notifications/:id/read
func (s *Server) markNotificationRead(c *gin.Context) {
	notification, err := s.store.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Notification not found")
		return
	}
	c.JSON(http.StatusOK, notification)
}

// PATCH /api/notifications/mark-all-read
func (s *Server) markAllNotificationsRead(c *gin.Context) {
	updated, err := s.store.MarkAllNotificationsRead(c.Request.Context())
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, MarkAllReadResponse{
		Message: "All notifications marked as read",
		Updated: updated,
	})
}
