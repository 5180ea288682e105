package catalog

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortLatest    = "latest"

	defaultMinPrice = 0
	defaultMaxPrice = 100000
)

// Filter holds the catalog query criteria. Groups combine with AND,
// alternatives inside a group with OR.
type Filter struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Materials []string
	Sort      string
}

// ParseFilter builds a Filter from raw query-string values.
func ParseFilter(category, search, minPrice, maxPrice, material, sort string) Filter {
	f := Filter{
		Category: category,
		Search:   search,
		Sort:     sort,
	}

	if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
		f.MaxPrice = &v
	}

	if material != "" {
		for _, m := range strings.Split(material, ",") {
			if m = strings.TrimSpace(m); m != "" {
				f.Materials = append(f.Materials, m)
			}
		}
	}

	return f
}

// Apply translates the filter into a product query. LOWER/LIKE keeps the
// case-insensitive matching identical on postgres and sqlite.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	q := db

	if f.Search != "" {
		pat := likePattern(f.Search)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(sub_category) LIKE ? OR LOWER(material) LIKE ?",
			pat, pat, pat, pat, pat,
		)
	}

	if f.Category != "" && f.Category != "All" {
		pat := likePattern(f.Category)
		q = q.Where("LOWER(category) LIKE ? OR LOWER(sub_category) LIKE ?", pat, pat)
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		min := float64(defaultMinPrice)
		max := float64(defaultMaxPrice)
		if f.MinPrice != nil {
			min = *f.MinPrice
		}
		if f.MaxPrice != nil {
			max = *f.MaxPrice
		}
		q = q.Where(
			"(discount_price IS NOT NULL AND discount_price >= ? AND discount_price <= ?) OR (discount_price IS NULL AND price >= ? AND price <= ?)",
			min, max, min, max,
		)
	}

	if len(f.Materials) > 0 {
		conds := make([]string, 0, len(f.Materials))
		args := make([]interface{}, 0, len(f.Materials))
		for _, m := range f.Materials {
			conds = append(conds, "LOWER(material) LIKE ?")
			args = append(args, likePattern(m))
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	// Sorting uses the base price column even though range filtering
	// works on the effective price.
	switch f.Sort {
	case SortPriceAsc:
		q = q.Order("price ASC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	return q
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
