package db

import (
	"github.com/inkpress-dev/inkpress/internal/auth"
	"github.com/inkpress-dev/inkpress/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectPostgres(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// ConnectSQLite opens a SQLite database. The _foreign_keys pragma must be
// part of the DSN, otherwise the CASCADE/RESTRICT constraints are ignored.
func ConnectSQLite(dsn string) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDatabase creates a demo account and a welcome post on an empty
// database so a fresh checkout has something to show.
func SeedDatabase() error {
	var count int64

	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword("Demo123!")

	if err != nil {
		return err
	}

	demo := models.User{
		Email:        "demo@ghost.local",
		DisplayName:  "Demo",
		PasswordHash: passwordHash,
	}

	if err := DB.Create(&demo).Error; err != nil {
		return err
	}

	welcome := models.Post{
		Title: "Welcome to Inkpress",
		Content: "This is a seeded example post.\n" +
			"Log in to create posts, search, delete and clear your own posts.\n\n" +
			"Demo account: demo@ghost.local / Demo123!",
		AuthorID: demo.ID,
	}

	return DB.Create(&welcome).Error
}
