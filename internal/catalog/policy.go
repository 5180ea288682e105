package catalog

import "github.com/vivek-boini/furniture/internal/models"

// EffectivePrice is the price a buyer actually pays: the discount price
// when one is set, the base price otherwise. Range filtering uses this;
// sorting deliberately does not (it always orders on the base price).
func EffectivePrice(p *models.Product) float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// IsOffer reports whether clients should present the product as
// discounted. The predicate is deliberately loose: the flag and the
// discount price are independent, and a "sale" category counts on its own.
func IsOffer(p *models.Product) bool {
	return p.IsOffer || p.DiscountPrice != nil || p.Category == "sale"
}
