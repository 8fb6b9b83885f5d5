package seed

import (
	"fmt"

	"gastronet/internal/models"

	"gorm.io/gorm"
)

// BuiltInSupplier is a permanent directory listing present in every
// environment. These entries start unclaimed; supplier accounts claim
// them through the API.
type BuiltInSupplier struct {
	Name        string
	Category    string
	Location    string
	Description string
}

// BuiltInSuppliers defines the permanent directory listings.
var BuiltInSuppliers = []BuiltInSupplier{
	{Name: "Valley Greens Produce", Category: "produce", Location: "Lyon", Description: "Seasonal vegetables and herbs, next-day delivery."},
	{Name: "Marée du Nord", Category: "seafood", Location: "Boulogne-sur-Mer", Description: "Daily catch from the Channel fleet."},
	{Name: "Boucherie Artisanale Morel", Category: "meat", Location: "Lyon", Description: "Dry-aged beef and heritage pork."},
	{Name: "Laiterie des Alpes", Category: "dairy", Location: "Annecy", Description: "Raw-milk cheeses and cultured butter."},
	{Name: "Fournil & Co", Category: "bakery", Location: "Paris", Description: "Sourdough, viennoiserie, and par-baked breads."},
	{Name: "Cave Lambert", Category: "beverages", Location: "Beaune", Description: "Independent wine negociant, natural wine focus."},
	{Name: "ProKitchen Equipment", Category: "equipment", Location: "Lille", Description: "Commercial kitchen equipment, sales and service."},
	{Name: "Épices du Monde", Category: "produce", Location: "Marseille", Description: "Imported spices and specialty dry goods."},
}

// Suppliers seeds the permanent directory listings. Existing entries are
// left untouched so claims survive re-seeding.
func Suppliers(db *gorm.DB) error {
	for _, item := range BuiltInSuppliers {
		supplier := models.Supplier{
			Name:        item.Name,
			Category:    item.Category,
			Location:    item.Location,
			Description: item.Description,
		}
		err := db.Where(models.Supplier{Name: item.Name}).
			Attrs(supplier).
			FirstOrCreate(&models.Supplier{}).Error
		if err != nil {
			return fmt.Errorf("seed supplier %q: %w", item.Name, err)
		}
	}
	return nil
}
