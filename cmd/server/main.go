package main

import (
	"log"
	"net/http"

	"github.com/OrlanTero/newAttendance-sub000/internal/backup"
	"github.com/OrlanTero/newAttendance-sub000/internal/config"
	"github.com/OrlanTero/newAttendance-sub000/internal/database"
	"github.com/OrlanTero/newAttendance-sub000/internal/routes"
	"github.com/OrlanTero/newAttendance-sub000/internal/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	backups := backup.NewManager(cfg.DB.Path, cfg.BackupDir)
	if cfg.BackupCron != "" {
		if _, err := backups.Schedule(cfg.BackupCron); err != nil {
			log.Fatalf("invalid backup cron %q: %v", cfg.BackupCron, err)
		}
		log.Printf("scheduled backups enabled: %s", cfg.BackupCron)
	}

	r := routes.NewRouter(cfg, db, hub, backups)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	log.Printf("server running on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
