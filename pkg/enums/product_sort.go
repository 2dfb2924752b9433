package enums

// ProductSort selects the ordering applied after product filtering.
type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceAsc  ProductSort = "price-asc"
	ProductSortPriceDesc ProductSort = "price-desc"
	ProductSortNameAsc   ProductSort = "name-asc"
	ProductSortNameDesc  ProductSort = "name-desc"
)

var validProductSorts = []ProductSort{
	ProductSortNewest,
	ProductSortPriceAsc,
	ProductSortPriceDesc,
	ProductSortNameAsc,
	ProductSortNameDesc,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// NormalizeProductSort maps unknown or empty input to the default ordering.
func NormalizeProductSort(value string) ProductSort {
	sort := ProductSort(value)
	if sort.IsValid() {
		return sort
	}
	return ProductSortNewest
}
