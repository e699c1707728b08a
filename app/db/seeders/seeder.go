package seeders

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trinetrasoft/cloud-kitchen/app/db/fakers"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

const (
	OwnerEmail    = "owner@trinetra.com"
	reviewerCount = 3
)

// DBSeed installs the demo customer, a kitchen owner and the demo
// catalogue. It does nothing when the demo customer already exists.
func DBSeed(db *gorm.DB, demoEmail string) error {
	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", demoEmail).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		zap.S().Infof("DBSeed: %s already present, skipping", demoEmail)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		customer, err := fakers.UserFaker(demoEmail, models.RoleCustomer)
		if err != nil {
			return err
		}
		if err := tx.Create(customer).Error; err != nil {
			return fmt.Errorf("failed to create demo customer: %w", err)
		}
		if err := tx.Create(fakers.AddressFaker(customer.ID)).Error; err != nil {
			return fmt.Errorf("failed to create demo address: %w", err)
		}

		owner, err := fakers.UserFaker(OwnerEmail, models.RoleKitchenOwner)
		if err != nil {
			return err
		}
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create kitchen owner: %w", err)
		}

		reviewers := make([]*models.User, 0, reviewerCount)
		for i := 0; i < reviewerCount; i++ {
			reviewer, err := fakers.UserFaker("", models.RoleCustomer)
			if err != nil {
				return err
			}
			if err := tx.Create(reviewer).Error; err != nil {
				return fmt.Errorf("failed to create reviewer: %w", err)
			}
			reviewers = append(reviewers, reviewer)
		}

		for _, tmpl := range fakers.DemoKitchens {
			kitchen := fakers.KitchenFaker(owner.ID, tmpl)
			if err := tx.Create(kitchen).Error; err != nil {
				return fmt.Errorf("failed to create kitchen %s: %w", tmpl.Name, err)
			}
			for i, dish := range tmpl.Dishes {
				if err := tx.Create(fakers.MenuItemFaker(kitchen.ID, i, dish)).Error; err != nil {
					return fmt.Errorf("failed to create menu item %s: %w", dish.Name, err)
				}
			}
			for _, reviewer := range reviewers {
				if err := tx.Create(fakers.ReviewFaker(kitchen.ID, reviewer.ID)).Error; err != nil {
					return fmt.Errorf("failed to create review: %w", err)
				}
			}
		}

		zap.S().Infof("DBSeed: seeded %d kitchens for owner %s", len(fakers.DemoKitchens), OwnerEmail)
		return nil
	})
}
