package database

import (
	"log"

	"github.com/OrlanTero/newAttendance-sub000/internal/config"
	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.DB.LogMode {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DB.Path), gormCfg)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Employee{},
		&models.Attendance{},
		&models.Holiday{},
		&models.User{},
	); err != nil {
		return nil, err
	}

	if err := seedAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedAdmin creates the default admin account on first start so the
// application is usable before any user management happens.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("seeded default admin account (username: admin)")
	return nil
}
