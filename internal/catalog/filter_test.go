package catalog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, products ...models.Product) {
	t.Helper()
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func run(t *testing.T, db *gorm.DB, f Filter) []models.Product {
	t.Helper()

	var out []models.Product
	require.NoError(t, f.Apply(db.Model(&models.Product{})).Find(&out).Error)
	return out
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func fp(v float64) *float64 { return &v }

func TestSearchMatchesAcrossFields(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "Oak Dining Table", Category: "Dining", Price: 500},
		models.Product{Name: "Bed Frame", Category: "Bedroom", Description: "solid oak build", Price: 700},
		models.Product{Name: "Lounge Chair", Category: "Living Room", Material: "Oak Wood", Price: 300},
		models.Product{Name: "Steel Shelf", Category: "Storage", Price: 150},
	)

	got := run(t, db, Filter{Search: "oak"})
	require.Len(t, got, 3)
	require.NotContains(t, names(got), "Steel Shelf")
}

func TestCategoryMatchesSubCategory(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "Velvet Sofa", Category: "Living Room", SubCategory: "Sofas", Price: 900},
		models.Product{Name: "Coffee Table", Category: "Living Room", SubCategory: "Tables", Price: 200},
	)

	got := run(t, db, Filter{Category: "Sofas"})
	require.Len(t, got, 1)
	require.Equal(t, "Velvet Sofa", got[0].Name)
}

func TestCategoryAllIsNoop(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "A", Category: "Dining", Price: 100},
		models.Product{Name: "B", Category: "Bedroom", Price: 200},
	)

	got := run(t, db, Filter{Category: "All"})
	require.Len(t, got, 2)
}

func TestPriceRangeUsesEffectivePrice(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "Discounted", Category: "Dining", Price: 1000, DiscountPrice: fp(500)},
		models.Product{Name: "Full Price", Category: "Dining", Price: 450},
	)

	got := run(t, db, Filter{MinPrice: fp(400), MaxPrice: fp(600)})
	require.ElementsMatch(t, []string{"Discounted", "Full Price"}, names(got))

	got = run(t, db, Filter{MinPrice: fp(700), MaxPrice: fp(900)})
	require.Empty(t, got)
}

func TestPriceRangeDefaultBounds(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "Cheap", Category: "Dining", Price: 50},
		models.Product{Name: "Expensive", Category: "Dining", Price: 99999},
	)

	// Only min supplied; max defaults to 100000.
	got := run(t, db, Filter{MinPrice: fp(60)})
	require.Len(t, got, 1)
	require.Equal(t, "Expensive", got[0].Name)
}

func TestMaterialMatchesAnyToken(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "A", Category: "Dining", Material: "Sheesham Wood", Price: 100},
		models.Product{Name: "B", Category: "Dining", Material: "Fabric", Price: 100},
		models.Product{Name: "C", Category: "Dining", Material: "Steel", Price: 100},
	)

	got := run(t, db, Filter{Materials: []string{"fabric", "sheesham wood"}})
	require.ElementsMatch(t, []string{"A", "B"}, names(got))
}

// Sorting always operates on the base price, even though the range filter
// uses the effective price.
func TestSortOnBasePrice(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "Mid", Category: "Dining", Price: 300},
		models.Product{Name: "Low", Category: "Dining", Price: 100},
		models.Product{Name: "High", Category: "Dining", Price: 200, DiscountPrice: fp(50)},
	)

	got := run(t, db, Filter{Sort: SortPriceAsc})
	require.Equal(t, []string{"Low", "High", "Mid"}, names(got))

	got = run(t, db, Filter{Sort: SortPriceDesc})
	require.Equal(t, []string{"Mid", "High", "Low"}, names(got))
}

func TestFilterGroupsCombineWithAnd(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		models.Product{Name: "Oak Sofa", Category: "Living Room", SubCategory: "Sofas", Material: "Oak Wood", Price: 500},
		models.Product{Name: "Oak Table", Category: "Dining", Material: "Oak Wood", Price: 500},
		models.Product{Name: "Fabric Sofa", Category: "Living Room", SubCategory: "Sofas", Material: "Fabric", Price: 500},
	)

	got := run(t, db, Filter{Category: "Sofas", Materials: []string{"oak"}})
	require.Len(t, got, 1)
	require.Equal(t, "Oak Sofa", got[0].Name)
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter("Sofas", "oak", "100", "900", "Fabric, Steel,", "price_asc")

	require.Equal(t, "Sofas", f.Category)
	require.Equal(t, "oak", f.Search)
	require.NotNil(t, f.MinPrice)
	require.Equal(t, 100.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	require.Equal(t, 900.0, *f.MaxPrice)
	require.Equal(t, []string{"Fabric", "Steel"}, f.Materials)
	require.Equal(t, SortPriceAsc, f.Sort)

	f = ParseFilter("", "", "", "not-a-number", "", "")
	require.Nil(t, f.MinPrice)
	require.Nil(t, f.MaxPrice)
	require.Empty(t, f.Materials)
}

func TestEffectivePrice(t *testing.T) {
	p := models.Product{Price: 1000}
	require.Equal(t, 1000.0, EffectivePrice(&p))

	p.DiscountPrice = fp(500)
	require.Equal(t, 500.0, EffectivePrice(&p))
}

func TestIsOffer(t *testing.T) {
	require.False(t, IsOffer(&models.Product{Category: "Dining", Price: 100}))
	require.True(t, IsOffer(&models.Product{Category: "Dining", Price: 100, IsOffer: true}))
	require.True(t, IsOffer(&models.Product{Category: "Dining", Price: 100, DiscountPrice: fp(50)}))
	require.True(t, IsOffer(&models.Product{Category: "sale", Price: 100}))
}
