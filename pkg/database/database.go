package database

import (
	"fmt"
	"log"

	"mentorhub_backend/internal/config"
	"mentorhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// Migrate wires the registration join model and creates the schema. Also
// used by tests against an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Session{}, "Participants", &model.Registration{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Registration{},
	)
}
