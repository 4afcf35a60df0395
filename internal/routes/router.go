package routes

import (
	"github.com/OrlanTero/newAttendance-sub000/internal/attendance"
	"github.com/OrlanTero/newAttendance-sub000/internal/backup"
	"github.com/OrlanTero/newAttendance-sub000/internal/config"
	"github.com/OrlanTero/newAttendance-sub000/internal/fingerprint"
	"github.com/OrlanTero/newAttendance-sub000/internal/handlers"
	"github.com/OrlanTero/newAttendance-sub000/internal/middleware"
	"github.com/OrlanTero/newAttendance-sub000/internal/report"
	wsHub "github.com/OrlanTero/newAttendance-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, hub *wsHub.Hub, backups *backup.Manager) *gin.Engine {
	r := gin.Default()

	service := attendance.NewService(db, cfg.Shift)
	reports := report.NewFacade(db)
	fpClient := fingerprint.NewClient(cfg.FingerprintURL)

	attendanceH := handlers.NewAttendanceHandler(service, reports, hub)
	employeeH := handlers.NewEmployeeHandler(db)
	holidayH := handlers.NewHolidayHandler(db)
	reportH := handlers.NewReportHandler(reports)
	authH := handlers.NewAuthHandler(db, cfg.JWTSecret)
	backupH := handlers.NewBackupHandler(backups)
	fingerprintH := handlers.NewFingerprintHandler(fpClient, service, db, hub)

	r.GET("/health", handlers.Health)
	r.GET("/ws", attendanceH.HandleWebsocket)
	r.POST("/auth/login", authH.Login)

	auth := middleware.AuthRequired(cfg.JWTSecret)
	admin := middleware.RequireAdmin()

	r.POST("/auth/change-password", auth, authH.ChangePassword)

	att := r.Group("/attendance", auth)
	{
		att.GET("", attendanceH.List)
		att.GET("/:id", attendanceH.GetByID)
		att.POST("", attendanceH.Create)
		att.POST("/manual", admin, attendanceH.CreateManual)
		att.PUT("/:id", attendanceH.Update)
		att.DELETE("/:id", attendanceH.Delete)
		att.POST("/check-in", attendanceH.CheckIn)
		att.PUT("/check-out/:id", attendanceH.CheckOut)
	}

	emp := r.Group("/employees", auth)
	{
		emp.GET("", employeeH.List)
		emp.GET("/:id", employeeH.GetByID)
		emp.POST("", admin, employeeH.Create)
		emp.PUT("/:id", admin, employeeH.Update)
		emp.DELETE("/:id", admin, employeeH.Delete)
	}

	hol := r.Group("/holidays", auth)
	{
		hol.GET("", holidayH.List)
		hol.POST("", admin, holidayH.Create)
		hol.DELETE("/:id", admin, holidayH.Delete)
	}

	rep := r.Group("/reports", auth)
	{
		rep.GET("/attendance", reportH.Attendance)
		rep.GET("/attendance/export", reportH.Export)
	}

	bak := r.Group("/backups", auth, admin)
	{
		bak.GET("", backupH.List)
		bak.POST("", backupH.Create)
		bak.POST("/restore", backupH.Restore)
	}

	fp := r.Group("/fingerprint")
	{
		fp.POST("/check-in", fingerprintH.CheckIn)
		fp.POST("/enroll/:id", auth, admin, fingerprintH.Enroll)
		fp.POST("/verify/:id", auth, fingerprintH.Verify)
	}

	return r
}
