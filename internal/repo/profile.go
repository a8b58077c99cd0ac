package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/cacheaside"
	"github.com/Skotchmaster/inventory/internal/models"
)

type ProfileRepo struct {
	DB    *gorm.DB
	Cache *cacheaside.Accessor
}

func NewProfileRepo(db *gorm.DB, accessor *cacheaside.Accessor) *ProfileRepo {
	return &ProfileRepo{DB: db, Cache: accessor}
}

func (r *ProfileRepo) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.ProfileUser{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id int) (*models.ProfileUser, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.ProfileUserKey(id), cache.DefaultExpiration(), func(ctx context.Context) (*models.ProfileUser, error) {
		var profile models.ProfileUser
		if err := r.DB.WithContext(ctx).First(&profile, id).Error; err != nil {
			return nil, translate(err)
		}
		return &profile, nil
	})
}

func (r *ProfileRepo) List(ctx context.Context) ([]models.ProfileUser, error) {
	return cacheaside.ReadThrough(ctx, r.Cache, cache.AllUsersKey, cache.DefaultExpiration(), func(ctx context.Context) ([]models.ProfileUser, error) {
		var items []models.ProfileUser
		if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
			return nil, err
		}
		return items, nil
	})
}

// Create requires the owning account to exist; the profile row cascades
// away when the account is deleted.
func (r *ProfileRepo) Create(ctx context.Context, profile *models.ProfileUser) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", profile.AppUserID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrReferenceMissing
	}

	res := r.DB.WithContext(ctx).Create(profile)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWriteFailed
	}
	return nil
}

// Update rewrites the name and phone fields only; the account link is
// immutable after creation.
func (r *ProfileRepo) Update(ctx context.Context, profile *models.ProfileUser) error {
	res := r.DB.WithContext(ctx).Model(&models.ProfileUser{}).Where("id = ?", profile.ID).
		Select("FirstName", "LastName", "PhoneNumber").Updates(profile)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	r.Cache.Invalidate(ctx, cache.ProfileUserKey(profile.ID))
	return nil
}

func (r *ProfileRepo) Delete(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.ProfileUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	r.Cache.Invalidate(ctx, cache.ProfileUserKey(id))
	return nil
}
