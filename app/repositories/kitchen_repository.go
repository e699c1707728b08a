package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"gorm.io/gorm"
)

type KitchenRepository interface {
	FindActive(ctx context.Context, q string) ([]models.Kitchen, error)
	FindActiveByIDOrSlug(ctx context.Context, idOrSlug string, reviewLimit int) (*models.Kitchen, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]models.Kitchen, error)
	Search(ctx context.Context, q string, limit int) ([]models.Kitchen, error)
	CountMenuItems(ctx context.Context, kitchenIDs []string) (map[string]int64, error)
	CountReviews(ctx context.Context, kitchenID string) (int64, error)
	Create(ctx context.Context, kitchen *models.Kitchen) error
}

type gormKitchenRepository struct {
	db *gorm.DB
}

func NewKitchenRepository(db *gorm.DB) KitchenRepository {
	return &gormKitchenRepository{db: db}
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// FindActive returns active kitchens, newest first, with reviews preloaded
// for rating aggregation.
func (r *gormKitchenRepository) FindActive(ctx context.Context, q string) ([]models.Kitchen, error) {
	query := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "kitchen_id", "overall_rating")
		}).
		Where("is_active = ?", true)

	if strings.TrimSpace(q) != "" {
		pattern := likePattern(q)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var kitchens []models.Kitchen
	if err := query.Order("created_at DESC").Find(&kitchens).Error; err != nil {
		return nil, err
	}
	return kitchens, nil
}

func (r *gormKitchenRepository) FindActiveByIDOrSlug(ctx context.Context, idOrSlug string, reviewLimit int) (*models.Kitchen, error) {
	var kitchen models.Kitchen
	err := r.db.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("category ASC").Order("display_order ASC")
		}).
		Where("(id = ? OR slug = ?) AND is_active = ?", idOrSlug, idOrSlug, true).
		First(&kitchen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var reviews []models.Review
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("kitchen_id = ?", kitchen.ID).
		Order("created_at DESC").
		Limit(reviewLimit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	kitchen.Reviews = reviews
	return &kitchen, nil
}

func (r *gormKitchenRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]models.Kitchen, error) {
	var kitchens []models.Kitchen
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&kitchens).Error; err != nil {
		return nil, err
	}
	return kitchens, nil
}

func (r *gormKitchenRepository) Search(ctx context.Context, q string, limit int) ([]models.Kitchen, error) {
	pattern := likePattern(q)
	var kitchens []models.Kitchen
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&kitchens).Error
	if err != nil {
		return nil, err
	}
	return kitchens, nil
}

func (r *gormKitchenRepository) CountMenuItems(ctx context.Context, kitchenIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(kitchenIDs))
	if len(kitchenIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		KitchenID string
		Total     int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Select("kitchen_id, COUNT(*) AS total").
		Where("kitchen_id IN ?", kitchenIDs).
		Group("kitchen_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.KitchenID] = row.Total
	}
	return counts, nil
}

func (r *gormKitchenRepository) CountReviews(ctx context.Context, kitchenID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("kitchen_id = ?", kitchenID).Count(&total).Error
	return total, err
}

func (r *gormKitchenRepository) Create(ctx context.Context, kitchen *models.Kitchen) error {
	return r.db.WithContext(ctx).Create(kitchen).Error
}
