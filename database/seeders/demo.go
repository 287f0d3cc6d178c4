package seeders

import (
	"errors"

	"github.com/shashiranjanraj/vyapar/app/models"
	"github.com/shashiranjanraj/vyapar/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo creates a demo account with two orders. Idempotent: it does
// nothing when the demo user already exists.
func SeedDemo(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", "demo").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return err
	}

	user := models.User{Username: "demo", PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	orders := []models.Order{
		{Quantity: 3, Status: models.StatusOpen, UserID: user.ID},
		{Quantity: 1, Status: "shipped", UserID: user.ID},
	}
	return db.Create(&orders).Error
}
