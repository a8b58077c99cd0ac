package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/query"
)

func TestProductCreateAndGetByID(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	product := models.Product{Name: "Ipad Air", Description: "light tablet", Price: 400}
	require.NoError(t, r.Create(ctxb(), &product, nil))
	require.NotZero(t, product.ID)

	got, err := r.GetByID(ctxb(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, product.Description, got.Description)
	assert.Equal(t, product.Price, got.Price)

	// second read is served from cache and must match too
	cached, err := r.GetByID(ctxb(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, got, cached)
}

func TestProductGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	_, err := r.GetByID(ctxb(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductCreateDuplicateNameConflict(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	first := models.Product{Name: "X", Price: 10}
	require.NoError(t, r.Create(ctxb(), &first, nil))

	second := models.Product{Name: "X", Price: 20}
	require.ErrorIs(t, r.Create(ctxb(), &second, nil), ErrConflict)

	var n int64
	require.NoError(t, env.DB.Model(&models.Product{}).Where("name = ?", "X").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestProductCreateLinksValidCategoriesOnly(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	apple := env.createCategory(t, "Apple")
	tech := env.createCategory(t, "Big Tech")

	product := models.Product{Name: "Macbook pro", Price: 1400}
	require.NoError(t, r.Create(ctxb(), &product, []int{apple.ID, tech.ID, 999}))

	assert.Equal(t, []int{apple.ID, tech.ID}, env.linkedCategoryIDs(t, product.ID))
}

func TestProductUpdateReplacesCategorySet(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	a := env.createCategory(t, "A")
	b := env.createCategory(t, "B")
	c := env.createCategory(t, "C")

	product := models.Product{Name: "S24 Ultra", Price: 730}
	require.NoError(t, r.Create(ctxb(), &product, []int{a.ID, b.ID}))
	require.Equal(t, []int{a.ID, b.ID}, env.linkedCategoryIDs(t, product.ID))

	product.Price = 700
	require.NoError(t, r.Update(ctxb(), &product, []int{c.ID}))

	assert.Equal(t, []int{c.ID}, env.linkedCategoryIDs(t, product.ID))
}

func TestProductUpdateEmptyCategoryListKeepsLinks(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	a := env.createCategory(t, "A")

	product := models.Product{Name: "Note 9", Price: 230}
	require.NoError(t, r.Create(ctxb(), &product, []int{a.ID}))

	product.Price = 200
	require.NoError(t, r.Update(ctxb(), &product, nil))

	assert.Equal(t, []int{a.ID}, env.linkedCategoryIDs(t, product.ID))
}

func TestProductGetByIDAfterUpdateReturnsNewValue(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	product := models.Product{Name: "Spark 5", Price: 50}
	require.NoError(t, r.Create(ctxb(), &product, nil))

	// warm the cache with the pre-update value
	_, err := r.GetByID(ctxb(), product.ID)
	require.NoError(t, err)

	product.Price = 55
	require.NoError(t, r.Update(ctxb(), &product, nil))

	got, err := r.GetByID(ctxb(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.Price)
}

func TestProductUpdateInvalidatesOldNameKey(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	product := models.Product{Name: "Old Name", Price: 10}
	require.NoError(t, r.Create(ctxb(), &product, nil))

	_, err := r.GetByName(ctxb(), "Old Name")
	require.NoError(t, err)

	product.Name = "New Name"
	require.NoError(t, r.Update(ctxb(), &product, nil))

	_, err = r.GetByName(ctxb(), "Old Name")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := r.GetByName(ctxb(), "New Name")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
}

func TestProductUpdateMissingNotFound(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	product := models.Product{ID: 99, Name: "ghost", Price: 1}
	require.ErrorIs(t, r.Update(ctxb(), &product, nil), ErrNotFound)
}

func TestProductDeleteRemovesLinksAndCacheEntry(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	a := env.createCategory(t, "A")
	product := models.Product{Name: "S pen", Price: 40}
	require.NoError(t, r.Create(ctxb(), &product, []int{a.ID}))

	_, err := r.GetByID(ctxb(), product.ID)
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctxb(), product.ID))

	_, err = r.GetByID(ctxb(), product.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, env.linkedCategoryIDs(t, product.ID))

	// the category itself survives
	var n int64
	require.NoError(t, env.DB.Model(&models.Category{}).Where("id = ?", a.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestProductListFilterAndPagination(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	prices := []float64{400, 600, 750, 1400, 70, 730, 230, 800, 50, 510, 40}
	for i, price := range prices {
		env.createProduct(t, string(rune('a'+i)), price)
	}

	minPrice := 500.0

	page1, err := r.List(ctxb(), query.ProductFilter{
		Price: &minPrice,
		Page:  query.Page{Number: 1, Size: 6},
	})
	require.NoError(t, err)
	require.Len(t, page1, 6)
	for i := 1; i < len(page1); i++ {
		assert.Greater(t, page1[i].ID, page1[i-1].ID)
	}
	for _, p := range page1 {
		assert.GreaterOrEqual(t, p.Price, minPrice)
	}

	// exactly six products pass the filter, so the second page is empty
	page2, err := r.List(ctxb(), query.ProductFilter{
		Price: &minPrice,
		Page:  query.Page{Number: 2, Size: 6},
	})
	require.NoError(t, err)
	assert.Empty(t, page2)
}

func TestProductListPagesDoNotOverlap(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	for i := 0; i < 11; i++ {
		env.createProduct(t, string(rune('a'+i)), float64(10*i))
	}

	page1, err := r.List(ctxb(), query.ProductFilter{Page: query.Page{Number: 1, Size: 6}})
	require.NoError(t, err)
	page2, err := r.List(ctxb(), query.ProductFilter{Page: query.Page{Number: 2, Size: 6}})
	require.NoError(t, err)

	require.Len(t, page1, 6)
	require.Len(t, page2, 5)

	seen := make(map[int]bool)
	for _, p := range page1 {
		seen[p.ID] = true
	}
	for _, p := range page2 {
		assert.False(t, seen[p.ID], "page 2 repeats id %d", p.ID)
	}
}

func TestProductListPageZeroClampedToFirstPage(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	for i := 0; i < 3; i++ {
		env.createProduct(t, string(rune('a'+i)), 100)
	}

	zero, err := r.List(ctxb(), query.ProductFilter{Page: query.Page{Number: 0, Size: 2}})
	require.NoError(t, err)
	first, err := r.List(ctxb(), query.ProductFilter{Page: query.Page{Number: 1, Size: 2}})
	require.NoError(t, err)

	assert.Equal(t, first, zero)
}

func TestProductExists(t *testing.T) {
	env := newTestEnv(t)
	r := NewProductRepo(env.DB, env.Accessor)

	product := env.createProduct(t, "exists", 1)

	ok, err := r.Exists(ctxb(), product.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Exists(ctxb(), product.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}
