package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/attendance"
	"github.com/OrlanTero/newAttendance-sub000/internal/report"
	wsHub "github.com/OrlanTero/newAttendance-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
	ws "github.com/gorilla/websocket"
)

type AttendanceHandler struct {
	service *attendance.Service
	reports *report.Facade
	hub     *wsHub.Hub
}

func NewAttendanceHandler(service *attendance.Service, reports *report.Facade, hub *wsHub.Hub) *AttendanceHandler {
	return &AttendanceHandler{service: service, reports: reports, hub: hub}
}

// respondServiceError maps tagged service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, attendance.ErrValidation), errors.Is(err, attendance.ErrNoFields):
		status = http.StatusBadRequest
	case errors.Is(err, attendance.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

func (h *AttendanceHandler) List(c *gin.Context) {
	params := report.FilterParams{
		Department: c.Query("department"),
		Status:     c.Query("status"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil {
		params.Limit = v
	}
	if v, err := strconv.ParseUint(c.Query("employee_id"), 10, 32); err == nil {
		params.EmployeeID = uint(v)
	}
	if date := c.Query("date"); date != "" {
		params.DateFrom = date
		params.DateTo = date
	}

	page, err := h.reports.Filter(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load attendance records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Data,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
	})
}

func (h *AttendanceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.service.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

type attendanceRequest struct {
	EmployeeID uint       `json:"employee_id"`
	Date       string     `json:"date"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Status     string     `json:"status"`
	Remarks    string     `json:"remarks"`
}

func (r attendanceRequest) toInput() attendance.CreateInput {
	return attendance.CreateInput{
		EmployeeID: r.EmployeeID,
		Date:       r.Date,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Status:     r.Status,
		Remarks:    r.Remarks,
	}
}

func (h *AttendanceHandler) Create(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	record, err := h.service.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record, "message": "attendance record created"})
}

func (h *AttendanceHandler) CreateManual(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	record, err := h.service.CreateManualLog(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.BroadcastAttendance(wsHub.EventManual, *record)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record, "message": "manual attendance log created"})
}

type attendanceUpdateRequest struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Status   *string    `json:"status"`
	Remarks  *string    `json:"remarks"`
}

func (h *AttendanceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req attendanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	record, err := h.service.Update(id, attendance.UpdateInput{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Status:   req.Status,
		Remarks:  req.Remarks,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record, "message": "attendance record updated"})
}

func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete attendance record"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "attendance record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "attendance record deleted"})
}

type checkInRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	record, err := h.service.CheckIn(req.EmployeeID, req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.BroadcastAttendance(wsHub.EventCheckIn, *record)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.service.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.BroadcastAttendance(wsHub.EventCheckOut, *record)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebsocket attaches a dashboard client to the hub and seeds it with
// today's records before live events start flowing.
func (h *AttendanceHandler) HandleWebsocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := wsHub.NewClient(h.hub, conn)
	h.hub.Register(client)

	go func() {
		today := time.Now().Format("2006-01-02")
		records, err := h.service.GetByDate(today)
		if err != nil {
			return
		}
		payload := gin.H{
			"type": "attendance:init",
			"payload": gin.H{
				"data":  records,
				"total": len(records),
			},
		}
		if data, err := json.Marshal(payload); err == nil {
			client.Send(data)
		}
	}()

	go client.WritePump()
	go client.ReadPump()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
