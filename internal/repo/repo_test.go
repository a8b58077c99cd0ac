package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/cacheaside"
	"github.com/Skotchmaster/inventory/internal/models"
)

type testEnv struct {
	DB       *gorm.DB
	Store    *cache.Memory
	Accessor *cacheaside.Accessor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.ProductCategory{},
		&models.ProfileUser{},
		&models.Sale{},
	))

	store := cache.NewMemory()
	t.Cleanup(store.Close)

	return &testEnv{
		DB:       db,
		Store:    store,
		Accessor: cacheaside.New(store),
	}
}

func (env *testEnv) createCategory(t *testing.T, title string) models.Category {
	t.Helper()
	category := models.Category{Title: title}
	require.NoError(t, env.DB.Create(&category).Error)
	return category
}

func (env *testEnv) createProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Description: name + " description", Price: price}
	require.NoError(t, env.DB.Create(&product).Error)
	return product
}

func (env *testEnv) createProfile(t *testing.T) models.ProfileUser {
	t.Helper()
	user := models.User{ID: "acc-" + t.Name(), Username: "user-" + t.Name(), PasswordHash: "x", Role: "User"}
	require.NoError(t, env.DB.Create(&user).Error)
	profile := models.ProfileUser{AppUserID: user.ID, FirstName: "Test", LastName: "User", PhoneNumber: "555-0100"}
	require.NoError(t, env.DB.Create(&profile).Error)
	return profile
}

func (env *testEnv) linkedCategoryIDs(t *testing.T, productID int) []int {
	t.Helper()
	var ids []int
	require.NoError(t, env.DB.Model(&models.ProductCategory{}).
		Where("product_id = ?", productID).Order("category_id ASC").
		Pluck("category_id", &ids).Error)
	return ids
}

func ctxb() context.Context { return context.Background() }
