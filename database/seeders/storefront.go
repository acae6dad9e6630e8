package seeders

import (
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("users", SeedUsers)
	Register("items", SeedItems)
}

// SeedUsers creates a store admin and a plain shopper for local development.
// Idempotent: existing emails are left untouched.
func SeedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	admin := models.User{Name: "Store Admin", Email: "admin@storefront.test", Password: hash}
	admin.SetPermissions(models.PermissionSet{models.PermAdmin, models.PermUser})

	shopper := models.User{Name: "Sam Shopper", Email: "sam@storefront.test", Password: hash}
	shopper.SetPermissions(models.PermissionSet{models.PermUser})

	for _, u := range []models.User{admin, shopper} {
		user := u
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}
	return nil
}

// SeedItems puts a few demo items in the catalogue, owned by the admin.
func SeedItems(db *gorm.DB) error {
	var admin models.User
	if err := db.Where("email = ?", "admin@storefront.test").First(&admin).Error; err != nil {
		return fmt.Errorf("seed items: admin user missing (run users seeder first): %w", err)
	}

	items := []models.Item{
		{Title: "Canvas Backpack", Description: "Waxed canvas, fits a 15\" laptop.", Price: 7999, UserID: admin.ID},
		{Title: "Enamel Mug", Description: "Campfire-proof, 350ml.", Price: 1450, UserID: admin.ID},
		{Title: "Wool Beanie", Description: "Merino, one size.", Price: 2500, UserID: admin.ID},
		{Title: "Field Notebook", Description: "48 pages, dot grid, pack of three.", Price: 1200, UserID: admin.ID},
	}
	for _, it := range items {
		item := it
		if err := db.Where("title = ?", item.Title).FirstOrCreate(&item).Error; err != nil {
			return fmt.Errorf("seed item %q: %w", item.Title, err)
		}
	}
	return nil
}
