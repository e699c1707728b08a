package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"gorm.io/gorm"
)

type MenuFilter struct {
	KitchenID     string
	Category      string
	Q             string
	AvailableOnly bool
}

type MenuItemRepository interface {
	Find(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.MenuItem, error)
	Search(ctx context.Context, q string, limit int) ([]models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

type gormMenuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &gormMenuItemRepository{db: db}
}

func withKitchenSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "slug")
}

func (r *gormMenuItemRepository) Find(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Preload("Kitchen", withKitchenSummary)

	if filter.KitchenID != "" {
		query = query.Where("kitchen_id = ?", filter.KitchenID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if q := strings.TrimSpace(filter.Q); q != "" {
		pattern := likePattern(q)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var items []models.MenuItem
	if err := query.Order("display_order ASC").Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormMenuItemRepository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Preload("Kitchen").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormMenuItemRepository) FindByIDs(ctx context.Context, ids []string) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormMenuItemRepository) Search(ctx context.Context, q string, limit int) ([]models.MenuItem, error) {
	pattern := likePattern(q)
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Kitchen", withKitchenSummary).
		Where("is_available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Kitchen").Save(item).Error
}

func (r *gormMenuItemRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Update("is_available", available).Error
}
