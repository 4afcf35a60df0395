package handlers

import (
	"errors"
	"net/http"

	"github.com/OrlanTero/newAttendance-sub000/internal/backup"
	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	manager *backup.Manager
}

func NewBackupHandler(manager *backup.Manager) *BackupHandler {
	return &BackupHandler{manager: manager}
}

func (h *BackupHandler) Create(c *gin.Context) {
	info, err := h.manager.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "backup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": info, "message": "backup created"})
}

func (h *BackupHandler) List(c *gin.Context) {
	infos, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list backups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": infos, "total": len(infos)})
}

type restoreRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *BackupHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "backup name is required"})
		return
	}

	if err := h.manager.Restore(req.Name); err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "backup not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "restore failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "backup restored; restart the server to reopen the database"})
}
