package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/attendance"
	"github.com/OrlanTero/newAttendance-sub000/internal/fingerprint"
	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	wsHub "github.com/OrlanTero/newAttendance-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FingerprintHandler bridges the scanner microservice and the attendance
// service: a successful identify becomes a check-in.
type FingerprintHandler struct {
	client  *fingerprint.Client
	service *attendance.Service
	db      *gorm.DB
	hub     *wsHub.Hub
}

func NewFingerprintHandler(client *fingerprint.Client, service *attendance.Service, db *gorm.DB, hub *wsHub.Hub) *FingerprintHandler {
	return &FingerprintHandler{client: client, service: service, db: db, hub: hub}
}

// Enroll captures a fingerprint for an employee and marks them enrolled.
func (h *FingerprintHandler) Enroll(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "employee not found"})
		return
	}

	result, err := h.client.Capture(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": result.Message})
		return
	}

	if err := h.db.Model(&employee).Update("enrolled", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to mark employee enrolled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Data, "message": "fingerprint enrolled"})
}

// Verify proxies a verification request for one employee.
func (h *FingerprintHandler) Verify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.client.Verify(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": result.Success, "data": result.Data, "message": result.Message})
}

// CheckIn runs a scanner identify and, on a match, records the check-in for
// the identified employee.
func (h *FingerprintHandler) CheckIn(c *gin.Context) {
	result, err := h.client.Identify(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": result.Message})
		return
	}

	var match struct {
		EmployeeID uint `json:"employee_id"`
	}
	if err := json.Unmarshal(result.Data, &match); err != nil || match.EmployeeID == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "scanner returned no employee match"})
		return
	}

	record, err := h.service.CheckIn(match.EmployeeID, time.Now().Format("2006-01-02"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.BroadcastAttendance(wsHub.EventCheckIn, *record)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}
