package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant/config"
	"restaurant/model"
)

var DB *gorm.DB

// InitDatabase opens the connection, migrates the schema and seeds defaults.
// Called exactly once at startup; nothing here runs as an import side effect.
func InitDatabase() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if config.IsRelease() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(config.AppConfig.DatabaseDSN), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Database is not reachable: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := SeedDefaults(DB); err != nil {
		log.Fatalf("Seeding defaults failed: %v", err)
	}

	log.Println("Database connection and migration completed")
}

// Migrate creates or updates the schema for all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.AdminUser{},
		&model.Session{},
		&model.MenuCategory{},
		&model.MenuItem{},
		&model.VisitorStat{},
		&model.DailyStat{},
		&model.OpeningHour{},
	)
}

// SeedDefaults ensures the bootstrap super_admin account and the seven
// weekday rows exist. Idempotent.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.AdminUser{}).Where("email = ?", config.AppConfig.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := model.AdminUser{
			Email:        config.AppConfig.AdminEmail,
			PasswordHash: string(hash),
			Name:         "Administrator",
			Role:         model.RoleSuperAdmin,
			IsActive:     true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Default admin %s created, change the password immediately", admin.Email)
	}

	if err := db.Model(&model.OpeningHour{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
		for _, day := range days {
			if err := db.Create(&model.OpeningHour{Day: day}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
