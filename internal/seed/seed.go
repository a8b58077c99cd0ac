// Package seed loads a small demo catalog for development environments.
package seed

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/models"
)

func Run(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Ipad Air", Description: "Apple's Ipad Air, Very Light", Price: 400},
		{Name: "Ipad Pro", Description: "Apple's Ipad Pro, Advanced Tech", Price: 600},
		{Name: "Iphone 16 Pro Max", Description: "Apple's Latest Iphone, Just the best", Price: 750},
		{Name: "Macbook pro", Description: "Apple's IMac system, runs on the latest M4 chip", Price: 1400},
		{Name: "Airpods pro 2", Description: "Best for listening to stereo music", Price: 70},
		{Name: "S24 Ultra", Description: "Samsung's Latest phone, Very Fast", Price: 730},
		{Name: "Note 9", Description: "Samsung's middle range phone", Price: 230},
		{Name: "NoteBook Laptop", Description: "Samsung's Laptop, Very Sleek", Price: 800},
		{Name: "Spark 5", Description: "Tecno's Phone, Very Old", Price: 50},
		{Name: "Spark 5 pro", Description: "Tecno's Phone, Advanced of the base Spark 5", Price: 60},
		{Name: "S pen", Description: "Samsung's Wireless Pen, Very Light and fast", Price: 40},
	}
	categories := []models.Category{
		{Title: "Apple"},
		{Title: "Samsung"},
		{Title: "Tecno"},
		{Title: "Big Tech"},
		{Title: "Medium Tech"},
		{Title: "Small Tech"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}

		// product index -> category indexes
		linkPlan := map[int][]int{
			0: {0, 4}, 1: {0, 4}, 2: {0, 4}, 3: {0, 3}, 4: {0, 5},
			5: {1, 4}, 6: {1, 4}, 7: {1, 3}, 8: {2, 4}, 9: {2, 4}, 10: {1, 5},
		}
		for pi, cis := range linkPlan {
			for _, ci := range cis {
				link := models.ProductCategory{
					ProductID:  products[pi].ID,
					CategoryID: categories[ci].ID,
				}
				if err := tx.Create(&link).Error; err != nil {
					return fmt.Errorf("seed product categories: %w", err)
				}
			}
		}
		return nil
	})
}
