package handlers

import (
	"errors"
	"net/http"

	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmployeeHandler serves the employee directory the attendance rows point
// into.
type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	query := h.db.Order("name ASC")
	if dept := c.Query("department"); dept != "" {
		query = query.Where("department = ?", dept)
	}
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": employees, "total": len(employees)})
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": employee})
}

type employeeRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Active     *bool  `json:"active"`
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	employee := models.Employee{
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		Email:      req.Email,
		Active:     true,
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": employee, "message": "employee created"})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load employee"})
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Department != "" {
		updates["department"] = req.Department
	}
	if req.Position != "" {
		updates["position"] = req.Position
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
		return
	}

	if err := h.db.Model(&employee).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": employee, "message": "employee updated"})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := h.db.Delete(&models.Employee{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete employee"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "employee not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "employee deleted"})
}
