package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/cacheaside"
	"github.com/Skotchmaster/inventory/internal/models"
)

type CategoryRepo struct {
	DB    *gorm.DB
	Cache *cacheaside.Accessor
}

func NewCategoryRepo(db *gorm.DB, accessor *cacheaside.Accessor) *CategoryRepo {
	return &CategoryRepo{DB: db, Cache: accessor}
}

func (r *CategoryRepo) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.CategoryKey(id), cache.DefaultExpiration(), func(ctx context.Context) (*models.Category, error) {
		var category models.Category
		if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
			return nil, translate(err)
		}
		return &category, nil
	})
}

func (r *CategoryRepo) GetByTitle(ctx context.Context, title string) (*models.Category, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.CategoryTitleKey(title), cache.DefaultExpiration(), func(ctx context.Context) (*models.Category, error) {
		var category models.Category
		if err := r.DB.WithContext(ctx).Where("title = ?", title).First(&category).Error; err != nil {
			return nil, translate(err)
		}
		return &category, nil
	})
}

// List serves the whole catalog from one collection key. Single-entity
// writes do not invalidate it; it ages out by TTL.
func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.AllCategoriesKey, cache.DefaultExpiration(), func(ctx context.Context) ([]models.Category, error) {
		var items []models.Category
		if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
			return nil, err
		}
		return items, nil
	})
}

func (r *CategoryRepo) Create(ctx context.Context, category *models.Category) error {
	var existing models.Category
	err := r.DB.WithContext(ctx).Where("title = ?", category.Title).First(&existing).Error
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	res := r.DB.WithContext(ctx).Create(category)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWriteFailed
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *models.Category) error {
	var previous models.Category
	if err := r.DB.WithContext(ctx).First(&previous, category.ID).Error; err != nil {
		return translate(err)
	}

	res := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", category.ID).
		Select("Title").Updates(category)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWriteFailed
	}

	keys := []string{cache.CategoryKey(category.ID), cache.CategoryTitleKey(category.Title)}
	if previous.Title != category.Title {
		keys = append(keys, cache.CategoryTitleKey(previous.Title))
	}
	r.Cache.Invalidate(ctx, keys...)
	return nil
}

// Delete removes the category and every association row pointing at it.
// Linked products survive with the link gone.
func (r *CategoryRepo) Delete(ctx context.Context, id int) error {
	var category models.Category
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWriteFailed
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.Cache.Invalidate(ctx, cache.CategoryKey(id), cache.CategoryTitleKey(category.Title))
	return nil
}
