package config

import (
	"github.com/afoster8/flashcard-app-redux/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Database *gorm.DB

// Connect opens the database and runs migrations. Postgres is used when
// DB_URL is set; otherwise a local sqlite file keeps development simple.
func Connect() error {
	var dialector gorm.Dialector
	if Env.DBURL != "" {
		dialector = postgres.Open(Env.DBURL)
	} else {
		dialector = sqlite.Open(Env.SQLitePath)
	}

	var err error
	Database, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = Database.AutoMigrate(&models.User{}, &models.Folder{}, &models.Deck{}, &models.Card{})
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}
