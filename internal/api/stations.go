package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complaintdesk/pkg/types"
)

// GET /api/stations
func (s *Server) listStations(c *gin.Context) {
	stations, err := s.store.ListActiveStations(c.Request.Context())
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, stations)
}

// GET /api/stations/:id
func (s *Server) getStation(c *gin.Context) {
	station, err := s.store.GetStation(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Station not found")
		return
	}
	c.JSON(http.StatusOK, station)
}

// GET /api/stations/qr/:code
func (s *Server) getStationByQRCode(c *gin.Context) {
	station, err := s.store.GetStationByQRCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.fail(c, err, "Station not found")
		return
	}
	c.JSON(http.StatusOK, station)
}

// POST /api/stations
// FUNCTIONAL DISCOVERY: The QR payload is opaque to customers; the printed
// code encodes reportUrl, which is derived from the station id
func (s *Server) createStation(c *gin.Context) {
	var req types.StationRequest
	if !s.bindStation(c, &req) {
		return
	}

	id := uuid.NewString()
	station := &types.Station{
		ID:          id,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		QRCodeData:  s.qrCodeData(),
		ReportURL:   s.reportURL(id),
		IsActive:    true,
	}
	if err := s.store.CreateStation(c.Request.Context(), station); err != nil {
		s.fail(c, err, "")
		return
	}

	s.publisher.PublishStationUpdate(types.StationCreated, station)
	c.JSON(http.StatusCreated, station)
}

// PUT /api/stations/:id
func (s *Server) updateStation(c *gin.Context) {
	var req types.StationRequest
	if !s.bindStation(c, &req) {
		return
	}

	ctx := c.Request.Context()
	station, err := s.store.GetStation(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err, "Station not found")
		return
	}

	station.Name = req.Name
	station.Location = req.Location
	station.Description = req.Description
	if req.IsActive != nil {
		station.IsActive = *req.IsActive
	}
	if err := s.store.UpdateStation(ctx, station); err != nil {
		s.fail(c, err, "Station not found")
		return
	}

	s.publisher.PublishStationUpdate(types.StationUpdated, station)
	c.JSON(http.StatusOK, station)
}

// DELETE /api/stations/:id
func (s *Server) deleteStation(c *gin.Context) {
	station, err := s.store.DeleteStation(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Station not found")
		return
	}

	s.publisher.PublishStationUpdate(types.StationDeleted, station)
	c.JSON(http.StatusOK, MessageResponse{Message: "Station deleted successfully"})
}

func (s *Server) bindStation(c *gin.Context, req *types.StationRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.sendError(c, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := req.Validate(); err != nil {
		s.fail(c, err, "")
		return false
	}
	return true
}

// qrCodeData returns "STATION-<unix millis>-<random>".
func (s *Server) qrCodeData() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("STATION-%d-%s", s.now().UnixMilli(), suffix)
}

func (s *Server) reportURL(stationID string) string {
	return strings.TrimRight(s.baseURL, "/") + "/report/" + stationID
}
