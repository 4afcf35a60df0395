package handlers

import (
	"net/http"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HolidayHandler maintains the holiday calendar feeding working-day math.
type HolidayHandler struct {
	db *gorm.DB
}

func NewHolidayHandler(db *gorm.DB) *HolidayHandler {
	return &HolidayHandler{db: db}
}

func (h *HolidayHandler) List(c *gin.Context) {
	var holidays []models.Holiday
	if err := h.db.Order("date ASC").Find(&holidays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load holidays"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": holidays, "total": len(holidays)})
}

type holidayRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

func (h *HolidayHandler) Create(c *gin.Context) {
	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if req.Name == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name and date are required"})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "date must be YYYY-MM-DD"})
		return
	}

	holiday := models.Holiday{Name: req.Name, Date: req.Date, Recurring: req.Recurring}
	if err := h.db.Create(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create holiday"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": holiday, "message": "holiday created"})
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := h.db.Delete(&models.Holiday{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete holiday"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "holiday not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "holiday deleted"})
}
