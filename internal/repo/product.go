package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/cacheaside"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/query"
)

type ProductRepo struct {
	DB    *gorm.DB
	Cache *cacheaside.Accessor
}

func NewProductRepo(db *gorm.DB, accessor *cacheaside.Accessor) *ProductRepo {
	return &ProductRepo{DB: db, Cache: accessor}
}

func (r *ProductRepo) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.ProductKey(id), cache.DefaultExpiration(), func(ctx context.Context) (*models.Product, error) {
		var product models.Product
		if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
			return nil, translate(err)
		}
		return &product, nil
	})
}

func (r *ProductRepo) GetByName(ctx context.Context, name string) (*models.Product, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.ProductNameKey(name), cache.DefaultExpiration(), func(ctx context.Context) (*models.Product, error) {
		var product models.Product
		if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
			return nil, translate(err)
		}
		return &product, nil
	})
}

// List reads straight from the store: product pages are filter-shaped and
// not worth caching per combination.
func (r *ProductRepo) List(ctx context.Context, filter query.ProductFilter) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Scopes(filter.Scope()).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts the product and links it to every category id that
// resolves to a live category, in one transaction. A live product with
// the same name is a conflict.
func (r *ProductRepo) Create(ctx context.Context, product *models.Product, categoryIDs []int) error {
	var existing models.Product
	err := r.DB.WithContext(ctx).Where("name = ?", product.Name).First(&existing).Error
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Create(product)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrWriteFailed
		}
		return linkProductCategories(tx, product.ID, categoryIDs)
	})
}

// Update writes the full row by id. A non-empty category id list replaces
// the product's association set wholesale; an empty list leaves the
// existing links untouched. Both the id-keyed and name-keyed cache
// entries are invalidated, including the previous name when it changed.
func (r *ProductRepo) Update(ctx context.Context, product *models.Product, categoryIDs []int) error {
	var previous models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&previous, product.ID).Error; err != nil {
			return translate(err)
		}
		res := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Select("Name", "Description", "Price").Updates(product)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrWriteFailed
		}
		if len(categoryIDs) > 0 {
			return replaceProductCategories(tx, product.ID, categoryIDs)
		}
		return nil
	})
	if err != nil {
		return err
	}

	keys := []string{cache.ProductKey(product.ID), cache.ProductNameKey(product.Name)}
	if previous.Name != product.Name {
		keys = append(keys, cache.ProductNameKey(previous.Name))
	}
	r.Cache.Invalidate(ctx, keys...)
	return nil
}

// Delete removes the product and its association rows. The join rows are
// dropped explicitly rather than trusting the store's cascade.
func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	var product models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
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

	r.Cache.Invalidate(ctx, cache.ProductKey(id), cache.ProductNameKey(product.Name))
	return nil
}

// Categories returns the ids of the categories currently linked to the
// product, in ascending order.
func (r *ProductRepo) Categories(ctx context.Context, id int) ([]int, error) {
	var ids []int
	err := r.DB.WithContext(ctx).Model(&models.ProductCategory{}).
		Where("product_id = ?", id).Order("category_id ASC").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
