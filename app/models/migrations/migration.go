package migrations

import (
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.Kitchen{},
		&models.MenuItem{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Subscription{},
	)
}
