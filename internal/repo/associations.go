package repo

import (
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/models"
)

// linkProductCategories inserts one association row per category id that
// resolves to a live category. Ids with no matching category are skipped,
// not reported: a product create must not fail over a stray category id.
func linkProductCategories(tx *gorm.DB, productID int, categoryIDs []int) error {
	for _, categoryID := range categoryIDs {
		var n int64
		if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		link := models.ProductCategory{ProductID: productID, CategoryID: categoryID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceProductCategories resynchronizes a product's category set as a
// full replace: every existing link is dropped, then fresh rows are
// inserted for each valid id. No diffing against the current set. Both
// phases run on the caller's transaction so a concurrent reader never
// observes the half-replaced state.
func replaceProductCategories(tx *gorm.DB, productID int, categoryIDs []int) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}
	return linkProductCategories(tx, productID, categoryIDs)
}
