package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

func catalogueFixture() (*KitchenService, *fakeMenuRepo) {
	kitchens := &fakeKitchenRepo{
		reviews: 42,
		kitchens: []models.Kitchen{
			{
				ID: "k1", OwnerID: "owner1", Slug: "amma-s-kitchen", Name: "Amma's Kitchen", IsActive: true,
				CuisineTypes: []string{"South Indian"}, RegionTags: []string{"Austin"},
				Reviews: []models.Review{{OverallRating: 5}, {OverallRating: 4}, {OverallRating: 4}},
			},
			{
				ID: "k2", OwnerID: "owner2", Slug: "casa-lupe", Name: "Casa Lupe", IsActive: true,
				CuisineTypes: []string{"Mexican"}, RegionTags: []string{"Dallas"},
			},
			{ID: "k3", Slug: "closed", Name: "Closed", IsActive: false},
		},
	}
	menu := newFakeMenuRepo(
		models.MenuItem{ID: "idli", KitchenID: "k1", Name: "Idli", Category: "Breakfast", DietaryTags: []string{"vegan"}, IsAvailable: true},
		models.MenuItem{ID: "vada", KitchenID: "k1", Name: "Vada", Category: "Snacks", IsAvailable: true},
		models.MenuItem{ID: "mole", KitchenID: "k2", Name: "Mole", Category: "Mains", IsAvailable: true},
	)
	return NewKitchenService(kitchens, menu), menu
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		ratings []int
		want    string
	}{
		{nil, "0"},
		{[]int{5, 4, 4}, "4.3"},
		{[]int{5, 4}, "4.5"},
		{[]int{3, 4, 4, 4, 4, 4}, "3.8"},
	}
	for _, tt := range tests {
		var reviews []models.Review
		for _, r := range tt.ratings {
			reviews = append(reviews, models.Review{OverallRating: r})
		}
		if got := AverageRating(reviews); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("AverageRating(%v): expected %s, got %s", tt.ratings, tt.want, got)
		}
	}
}

func TestKitchenService_ListKitchens(t *testing.T) {
	svc, _ := catalogueFixture()

	all, err := svc.ListKitchens(context.Background(), KitchenFilter{})
	if err != nil {
		t.Fatalf("ListKitchens returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 active kitchens, got %d", len(all))
	}
	if all[0].ReviewCount != 3 || !all[0].AvgRating.Equal(decimal.RequireFromString("4.3")) || all[0].MenuItemCount != 3 {
		t.Errorf("unexpected aggregates %+v", all[0])
	}
	if all[0].Reviews != nil {
		t.Errorf("expected reviews to be dropped from listing")
	}

	byCuisine, _ := svc.ListKitchens(context.Background(), KitchenFilter{Cuisine: "Mexican"})
	if len(byCuisine) != 1 || byCuisine[0].ID != "k2" {
		t.Errorf("expected only k2 for Mexican")
	}
	byRegion, _ := svc.ListKitchens(context.Background(), KitchenFilter{Region: "Austin"})
	if len(byRegion) != 1 || byRegion[0].ID != "k1" {
		t.Errorf("expected only k1 for Austin")
	}
}

func TestKitchenService_GetKitchen(t *testing.T) {
	svc, _ := catalogueFixture()

	bySlug, err := svc.GetKitchen(context.Background(), "amma-s-kitchen")
	if err != nil {
		t.Fatalf("GetKitchen returned error: %v", err)
	}
	if bySlug.ID != "k1" || bySlug.ReviewCount != 42 {
		t.Errorf("unexpected detail %+v", bySlug)
	}
	if _, err := svc.GetKitchen(context.Background(), "k1"); err != nil {
		t.Errorf("expected lookup by id to work, got %v", err)
	}
	if _, err := svc.GetKitchen(context.Background(), "closed"); !errors.Is(err, ErrKitchenNotFound) {
		t.Errorf("expected ErrKitchenNotFound for inactive kitchen, got %v", err)
	}
}

func TestKitchenService_ListMenuByDietaryTag(t *testing.T) {
	svc, _ := catalogueFixture()

	items, err := svc.ListMenu(context.Background(), MenuQuery{KitchenID: "k1", DietaryTag: "vegan"})
	if err != nil {
		t.Fatalf("ListMenu returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "idli" {
		t.Errorf("expected only idli, got %v", items)
	}
}

func TestKitchenService_SearchShortQuery(t *testing.T) {
	svc, _ := catalogueFixture()

	res, err := svc.Search(context.Background(), " a ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(res.Kitchens) != 0 || len(res.MenuItems) != 0 {
		t.Errorf("expected empty results for a one character query")
	}

	res, _ = svc.Search(context.Background(), "amma")
	if len(res.Kitchens) == 0 {
		t.Errorf("expected kitchens for a real query")
	}
}

func TestKitchenService_MenuManagement(t *testing.T) {
	svc, menu := catalogueFixture()
	in := MenuItemInput{Name: "Rava Dosa", Category: "Mains", Price: decimal.RequireFromString("11.499")}

	created, err := svc.CreateMenuItem(context.Background(), "owner1", "k1", in)
	if err != nil {
		t.Fatalf("CreateMenuItem returned error: %v", err)
	}
	if created.Slug != "rava-dosa" || !created.IsAvailable || !created.Price.Equal(decimal.RequireFromString("11.50")) {
		t.Errorf("unexpected menu item %+v", created)
	}

	if _, err := svc.CreateMenuItem(context.Background(), "owner2", "k1", in); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another owner's kitchen, got %v", err)
	}

	if _, err := svc.SetMenuItemAvailability(context.Background(), "owner1", created.ID, false); err != nil {
		t.Fatalf("SetMenuItemAvailability returned error: %v", err)
	}
	if menu.items[created.ID].IsAvailable {
		t.Errorf("expected item to be unavailable")
	}

	in.Name = "Onion Rava Dosa"
	updated, err := svc.UpdateMenuItem(context.Background(), "owner1", created.ID, in)
	if err != nil {
		t.Fatalf("UpdateMenuItem returned error: %v", err)
	}
	if updated.Slug != "onion-rava-dosa" {
		t.Errorf("expected slug to follow the new name, got %s", updated.Slug)
	}

	if _, err := svc.UpdateMenuItem(context.Background(), "owner1", "missing", in); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
	if _, err := svc.SetMenuItemAvailability(context.Background(), "owner1", "mole", false); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another kitchen's item, got %v", err)
	}
}
