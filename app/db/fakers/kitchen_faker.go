package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

type KitchenTemplate struct {
	Name     string
	Cuisines []string
	Regions  []string
	City     string
	State    string
	Dishes   []DishTemplate
}

type DishTemplate struct {
	Name     string
	Category string
	Price    string
	Dietary  []string
}

// DemoKitchens is the catalogue the seed command installs.
var DemoKitchens = []KitchenTemplate{
	{
		Name:     "Amma's Kitchen",
		Cuisines: []string{"South Indian"},
		Regions:  []string{"Tamil Nadu", "Kerala"},
		City:     "San Jose",
		State:    "CA",
		Dishes: []DishTemplate{
			{Name: "Masala Dosa", Category: "Mains", Price: "11.99", Dietary: []string{"vegetarian"}},
			{Name: "Idli Sambar", Category: "Breakfast", Price: "8.49", Dietary: []string{"vegetarian", "vegan"}},
			{Name: "Chettinad Chicken", Category: "Mains", Price: "15.99"},
			{Name: "Filter Coffee", Category: "Drinks", Price: "3.50", Dietary: []string{"vegetarian"}},
		},
	},
	{
		Name:     "Punjab Da Dhaba",
		Cuisines: []string{"North Indian", "Punjabi"},
		Regions:  []string{"Punjab"},
		City:     "Fremont",
		State:    "CA",
		Dishes: []DishTemplate{
			{Name: "Butter Chicken", Category: "Mains", Price: "16.49"},
			{Name: "Sarson Da Saag", Category: "Mains", Price: "13.99", Dietary: []string{"vegetarian", "gluten-free"}},
			{Name: "Garlic Naan", Category: "Breads", Price: "3.99", Dietary: []string{"vegetarian"}},
			{Name: "Mango Lassi", Category: "Drinks", Price: "4.99", Dietary: []string{"vegetarian"}},
		},
	},
	{
		Name:     "Kolkata Kathi Co",
		Cuisines: []string{"Bengali", "Street Food"},
		Regions:  []string{"West Bengal"},
		City:     "Sunnyvale",
		State:    "CA",
		Dishes: []DishTemplate{
			{Name: "Egg Chicken Roll", Category: "Rolls", Price: "9.99"},
			{Name: "Paneer Kathi Roll", Category: "Rolls", Price: "9.49", Dietary: []string{"vegetarian"}},
			{Name: "Mishti Doi", Category: "Desserts", Price: "4.50", Dietary: []string{"vegetarian", "gluten-free"}},
		},
	},
}

func KitchenFaker(ownerID string, tmpl KitchenTemplate) *models.Kitchen {
	return &models.Kitchen{
		OwnerID:            ownerID,
		Slug:               slug.Make(tmpl.Name),
		Name:               tmpl.Name,
		Description:        faker.Sentence(),
		Story:              faker.Paragraph(),
		CuisineTypes:       tmpl.Cuisines,
		RegionTags:         tmpl.Regions,
		Street:             faker.Word() + " Avenue",
		City:               tmpl.City,
		State:              tmpl.State,
		ZipCode:            "95112",
		Phone:              faker.Phonenumber(),
		Email:              slug.Make(tmpl.Name) + "@kitchens.trinetra.com",
		VerificationStatus: models.VerificationVerified,
		HygieneScore:       "A",
		IsActive:           true,
		AvgPrepTimeMinutes: 20 + rand.Intn(25),
	}
}

func MenuItemFaker(kitchenID string, order int, dish DishTemplate) *models.MenuItem {
	spice := rand.Intn(4)
	return &models.MenuItem{
		KitchenID:              kitchenID,
		Name:                   dish.Name,
		Slug:                   slug.Make(dish.Name),
		Description:            faker.Sentence(),
		Category:               dish.Category,
		Price:                  decimal.RequireFromString(dish.Price),
		PreparationTimeMinutes: 10 + rand.Intn(20),
		ServingSize:            "1 plate",
		SpiceLevel:             &spice,
		DietaryTags:            dish.Dietary,
		IsAvailable:            true,
		DisplayOrder:           order,
	}
}

func ReviewFaker(kitchenID, userID string) *models.Review {
	return &models.Review{
		KitchenID:     kitchenID,
		UserID:        userID,
		OverallRating: 3 + rand.Intn(3),
		Comment:       faker.Sentence(),
	}
}
