package db

import (
	"fmt"
	"log"
	"time"

	"github.com/serenity-aesthetics/salon-api/internal/config"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	// Bounded pool so exhaustion surfaces as an error instead of a hang.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.StaffUser{},
		&models.Service{},
		&models.ScheduleSlot{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedSalon(db, cfg)
	seedScheduleTemplate(db)

	return db
}

// seedSalon ensures the single settings row exists.
func seedSalon(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Salon{}).Count(&count)
	if count > 0 {
		db.Exec(`
        UPDATE salons
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.SalonTimezone)
		return
	}

	salon := models.Salon{
		Name:     cfg.SalonName,
		Timezone: cfg.SalonTimezone,
	}
	if err := db.Create(&salon).Error; err != nil {
		log.Fatalf("failed to seed salon settings: %v", err)
	}
}

// seedScheduleTemplate fills an empty template with hourly slots,
// Monday to Saturday, 09:00 through 17:00.
func seedScheduleTemplate(db *gorm.DB) {
	var count int64
	db.Model(&models.ScheduleSlot{}).Count(&count)
	if count > 0 {
		return
	}

	var slots []models.ScheduleSlot
	for weekday := 1; weekday <= 6; weekday++ {
		for hour := 9; hour <= 17; hour++ {
			slots = append(slots, models.ScheduleSlot{
				Weekday:   weekday,
				TimeOfDay: fmt.Sprintf("%02d:00", hour),
				Active:    true,
			})
		}
	}

	if err := db.Create(&slots).Error; err != nil {
		log.Fatalf("failed to seed schedule template: %v", err)
	}
}
