package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/cacheaside"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/query"
)

type SaleRepo struct {
	DB    *gorm.DB
	Cache *cacheaside.Accessor
}

func NewSaleRepo(db *gorm.DB, accessor *cacheaside.Accessor) *SaleRepo {
	return &SaleRepo{DB: db, Cache: accessor}
}

// checkReferences validates that the sale points at a live product and a
// live profile. A violation fails the whole operation; no partial row is
// ever written.
func (r *SaleRepo) checkReferences(ctx context.Context, sale *models.Sale) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", sale.ProductID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrReferenceMissing
	}

	if sale.ProfileUserID == nil {
		return ErrReferenceMissing
	}
	if err := r.DB.WithContext(ctx).Model(&models.ProfileUser{}).Where("id = ?", *sale.ProfileUserID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrReferenceMissing
	}
	return nil
}

func (r *SaleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int) (*models.Sale, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.SaleKey(id), cache.DefaultExpiration(), func(ctx context.Context) (*models.Sale, error) {
		var sale models.Sale
		if err := r.DB.WithContext(ctx).First(&sale, id).Error; err != nil {
			return nil, translate(err)
		}
		return &sale, nil
	})
}

func (r *SaleRepo) List(ctx context.Context, filter query.SaleFilter) ([]models.Sale, error) {
	var items []models.Sale
	if err := r.DB.WithContext(ctx).Model(&models.Sale{}).Scopes(filter.Scope()).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SaleRepo) Create(ctx context.Context, sale *models.Sale) error {
	if err := r.checkReferences(ctx, sale); err != nil {
		return err
	}

	res := r.DB.WithContext(ctx).Create(sale)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWriteFailed
	}
	return nil
}

func (r *SaleRepo) Update(ctx context.Context, sale *models.Sale) error {
	if err := r.checkReferences(ctx, sale); err != nil {
		return err
	}

	var existing models.Sale
	if err := r.DB.WithContext(ctx).First(&existing, sale.ID).Error; err != nil {
		return translate(err)
	}

	res := r.DB.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", sale.ID).
		Select("ProductID", "ProfileUserID", "Quantity", "SaleDate").Updates(sale)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWriteFailed
	}

	r.Cache.Invalidate(ctx, cache.SaleKey(sale.ID))
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	r.Cache.Invalidate(ctx, cache.SaleKey(id))
	return nil
}
