package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
)

const (
	RecentReviewLimit   = 20
	SearchMinQueryLen   = 2
	SearchKitchenLimit  = 10
	SearchMenuItemLimit = 20
)

type KitchenFilter struct {
	Cuisine string
	Region  string
	Q       string
}

type KitchenSummary struct {
	models.Kitchen
	AvgRating     decimal.Decimal `json:"avgRating"`
	ReviewCount   int             `json:"reviewCount"`
	MenuItemCount int64           `json:"menuItemCount"`
}

type KitchenDetail struct {
	*models.Kitchen
	AvgRating   decimal.Decimal `json:"avgRating"`
	ReviewCount int64           `json:"reviewCount"`
}

type MenuQuery struct {
	KitchenID  string
	Category   string
	DietaryTag string
	Q          string
}

type SearchResult struct {
	Kitchens  []models.Kitchen  `json:"kitchens"`
	MenuItems []models.MenuItem `json:"menuItems"`
}

// MenuItemInput is what a kitchen owner submits for a dish.
type MenuItemInput struct {
	Name                   string          `json:"name" validate:"required,max=255"`
	Description            string          `json:"description"`
	Category               string          `json:"category" validate:"required,max=100"`
	Price                  decimal.Decimal `json:"price" validate:"required"`
	PreparationTimeMinutes int             `json:"preparationTimeMinutes" validate:"gte=0"`
	ServingSize            string          `json:"servingSize"`
	SpiceLevel             *int            `json:"spiceLevel" validate:"omitempty,gte=0,lte=5"`
	DietaryTags            []string        `json:"dietaryTags"`
	Ingredients            []string        `json:"ingredients"`
	Allergens              []string        `json:"allergens"`
	ImageURL               string          `json:"imageUrl" validate:"omitempty,url"`
	IsSeasonalSpecial      bool            `json:"isSeasonalSpecial"`
	DisplayOrder           int             `json:"displayOrder"`
}

func (in MenuItemInput) apply(item *models.MenuItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.Slug = slug.Make(item.Name)
	item.Description = in.Description
	item.Category = in.Category
	item.Price = in.Price.Round(2)
	item.PreparationTimeMinutes = in.PreparationTimeMinutes
	item.ServingSize = in.ServingSize
	item.SpiceLevel = in.SpiceLevel
	item.DietaryTags = in.DietaryTags
	item.Ingredients = in.Ingredients
	item.Allergens = in.Allergens
	item.ImageURL = in.ImageURL
	item.IsSeasonalSpecial = in.IsSeasonalSpecial
	item.DisplayOrder = in.DisplayOrder
}

type KitchenService struct {
	kitchenRepo repositories.KitchenRepository
	menuRepo    repositories.MenuItemRepository
}

func NewKitchenService(kitchenRepo repositories.KitchenRepository, menuRepo repositories.MenuItemRepository) *KitchenService {
	return &KitchenService{kitchenRepo: kitchenRepo, menuRepo: menuRepo}
}

// AverageRating is the mean overall rating rounded to one decimal.
func AverageRating(reviews []models.Review) decimal.Decimal {
	if len(reviews) == 0 {
		return decimal.Zero
	}
	sum := 0
	for _, r := range reviews {
		sum += r.OverallRating
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)
}

func (s *KitchenService) ListKitchens(ctx context.Context, filter KitchenFilter) ([]KitchenSummary, error) {
	kitchens, err := s.kitchenRepo.FindActive(ctx, filter.Q)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitchens: %w", err)
	}

	matched := make([]models.Kitchen, 0, len(kitchens))
	for _, k := range kitchens {
		if filter.Cuisine != "" && !k.ServesCuisine(filter.Cuisine) {
			continue
		}
		if filter.Region != "" && !k.InRegion(filter.Region) {
			continue
		}
		matched = append(matched, k)
	}

	ids := make([]string, 0, len(matched))
	for _, k := range matched {
		ids = append(ids, k.ID)
	}
	counts, err := s.kitchenRepo.CountMenuItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	out := make([]KitchenSummary, 0, len(matched))
	for _, k := range matched {
		reviews := k.Reviews
		k.Reviews = nil
		out = append(out, KitchenSummary{
			Kitchen:       k,
			AvgRating:     AverageRating(reviews),
			ReviewCount:   len(reviews),
			MenuItemCount: counts[k.ID],
		})
	}
	return out, nil
}

// GetKitchen accepts either the kitchen id or its slug. The rating covers
// every review while only the most recent ones are attached.
func (s *KitchenService) GetKitchen(ctx context.Context, idOrSlug string) (*KitchenDetail, error) {
	kitchen, err := s.kitchenRepo.FindActiveByIDOrSlug(ctx, idOrSlug, RecentReviewLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load kitchen: %w", err)
	}
	if kitchen == nil {
		return nil, ErrKitchenNotFound
	}

	total, err := s.kitchenRepo.CountReviews(ctx, kitchen.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	return &KitchenDetail{
		Kitchen:     kitchen,
		AvgRating:   AverageRating(kitchen.Reviews),
		ReviewCount: total,
	}, nil
}

func (s *KitchenService) ListMenu(ctx context.Context, q MenuQuery) ([]models.MenuItem, error) {
	items, err := s.menuRepo.Find(ctx, repositories.MenuFilter{
		KitchenID: q.KitchenID,
		Category:  q.Category,
		Q:         q.Q,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	if q.DietaryTag == "" {
		return items, nil
	}

	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.HasDietaryTag(q.DietaryTag) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *KitchenService) Search(ctx context.Context, q string) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	result := &SearchResult{Kitchens: []models.Kitchen{}, MenuItems: []models.MenuItem{}}
	if len([]rune(q)) < SearchMinQueryLen {
		return result, nil
	}

	kitchens, err := s.kitchenRepo.Search(ctx, q, SearchKitchenLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search kitchens: %w", err)
	}
	items, err := s.menuRepo.Search(ctx, q, SearchMenuItemLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}

	if kitchens != nil {
		result.Kitchens = kitchens
	}
	if items != nil {
		result.MenuItems = items
	}
	return result, nil
}

func (s *KitchenService) OwnedKitchens(ctx context.Context, ownerID string) ([]models.Kitchen, error) {
	kitchens, err := s.kitchenRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load kitchens: %w", err)
	}
	return kitchens, nil
}

func (s *KitchenService) ownsKitchen(ctx context.Context, ownerID, kitchenID string) error {
	kitchens, err := s.OwnedKitchens(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, k := range kitchens {
		if k.ID == kitchenID {
			return nil
		}
	}
	return ErrForbidden
}

func (s *KitchenService) ownedMenuItem(ctx context.Context, ownerID, itemID string) (*models.MenuItem, error) {
	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if err := s.ownsKitchen(ctx, ownerID, item.KitchenID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *KitchenService) CreateMenuItem(ctx context.Context, ownerID, kitchenID string, in MenuItemInput) (*models.MenuItem, error) {
	if err := s.ownsKitchen(ctx, ownerID, kitchenID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{KitchenID: kitchenID, IsAvailable: true}
	in.apply(item)
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	zap.S().Infof("KitchenService.CreateMenuItem: %s added to kitchen %s", item.Slug, kitchenID)
	return item, nil
}

func (s *KitchenService) UpdateMenuItem(ctx context.Context, ownerID, itemID string, in MenuItemInput) (*models.MenuItem, error) {
	item, err := s.ownedMenuItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	in.apply(item)
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

func (s *KitchenService) SetMenuItemAvailability(ctx context.Context, ownerID, itemID string, available bool) (*models.MenuItem, error) {
	item, err := s.ownedMenuItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.menuRepo.SetAvailability(ctx, item.ID, available); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	item.IsAvailable = available
	return item, nil
}
