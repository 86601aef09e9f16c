package db

import (
	"log"

	"github.com/vitamed/backend/internal/chat"
	"github.com/vitamed/backend/internal/documents"
	"github.com/vitamed/backend/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens the MySQL database and runs automigration.
// A database that cannot be reached is fatal at process level.
func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	return gdb
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&documents.Document{},
		&chat.Exchange{},
	)
}
