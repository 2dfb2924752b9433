package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

// CategoryAll is the sentinel that disables a category filter.
const CategoryAll = "all"

// Range bounds a numeric filter parsed from a "min-max" encoding.
type Range struct {
	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// ParseRange decodes "min-max" or "min" strings. Anything unparsable
// yields the empty range, which filters nothing.
func ParseRange(value string) Range {
	value = strings.TrimSpace(value)
	if value == "" {
		return Range{}
	}
	parts := strings.SplitN(value, "-", 2)
	var r Range
	if min, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		r.Min = min
		r.HasMin = true
	}
	if len(parts) == 2 {
		if max, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			r.Max = max
			r.HasMax = true
		}
	}
	if !r.HasMin {
		// a bare "-max" form is not supported
		return Range{}
	}
	return r
}

// Contains reports whether v satisfies the active bounds.
func (r Range) Contains(v int) bool {
	if r.HasMin && v < r.Min {
		return false
	}
	if r.HasMax && v > r.Max {
		return false
	}
	return true
}

// Active reports whether the range filters anything at all.
func (r Range) Active() bool {
	return r.HasMin || r.HasMax
}

// TourCriteria narrows a tour listing. Zero values are ignored.
type TourCriteria struct {
	Query      string
	CategoryID uint
	Duration   Range
	Price      Range
}

// ProductCriteria narrows and orders a product listing.
type ProductCriteria struct {
	Query       string
	Category    string
	Price       Range
	InStockOnly bool
	Sort        enums.ProductSort
}

// BlogCriteria narrows a blog listing.
type BlogCriteria struct {
	Query    string
	Category string
}

// FilterTours applies all active criteria, AND-composed, preserving input order.
func FilterTours(tours []models.Tour, criteria TourCriteria) []models.Tour {
	query := normalizeQuery(criteria.Query)
	out := make([]models.Tour, 0, len(tours))
	for _, tour := range tours {
		if query != "" && !tourMatchesQuery(tour, query) {
			continue
		}
		if criteria.CategoryID != 0 {
			if tour.CategoryID == nil || *tour.CategoryID != criteria.CategoryID {
				continue
			}
		}
		if criteria.Duration.Active() && !criteria.Duration.Contains(tour.DurationDays) {
			continue
		}
		if criteria.Price.Active() && !criteria.Price.Contains(tour.Price) {
			continue
		}
		out = append(out, tour)
	}
	return out
}

// FilterProducts applies all active criteria then sorts the survivors.
func FilterProducts(products []models.Product, criteria ProductCriteria) []models.Product {
	query := normalizeQuery(criteria.Query)
	category := normalizeCategory(criteria.Category)
	out := make([]models.Product, 0, len(products))
	for _, product := range products {
		if query != "" && !productMatchesQuery(product, query) {
			continue
		}
		if category != "" && !strings.EqualFold(product.Category, category) {
			continue
		}
		if criteria.Price.Active() && !criteria.Price.Contains(product.EffectivePrice()) {
			continue
		}
		if criteria.InStockOnly && !product.InStock {
			continue
		}
		out = append(out, product)
	}
	sortProducts(out, criteria.Sort)
	return out
}

// FilterBlogPosts applies query and category criteria, preserving input order.
func FilterBlogPosts(posts []models.BlogPost, criteria BlogCriteria) []models.BlogPost {
	query := normalizeQuery(criteria.Query)
	category := normalizeCategory(criteria.Category)
	out := make([]models.BlogPost, 0, len(posts))
	for _, post := range posts {
		if query != "" && !blogPostMatchesQuery(post, query) {
			continue
		}
		if category != "" && !strings.EqualFold(post.Category, category) {
			continue
		}
		out = append(out, post)
	}
	return out
}

func sortProducts(products []models.Product, order enums.ProductSort) {
	switch enums.NormalizeProductSort(string(order)) {
	case enums.ProductSortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case enums.ProductSortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	case enums.ProductSortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case enums.ProductSortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) > strings.ToLower(products[j].Name)
		})
	default:
		// newest first
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	}
}

func tourMatchesQuery(tour models.Tour, query string) bool {
	if containsFold(tour.Title, query) || containsFold(tour.Description, query) {
		return true
	}
	for _, location := range tour.Locations {
		if containsFold(location, query) {
			return true
		}
	}
	return false
}

func productMatchesQuery(product models.Product, query string) bool {
	return containsFold(product.Name, query) || containsFold(product.Description, query)
}

func blogPostMatchesQuery(post models.BlogPost, query string) bool {
	if containsFold(post.Title, query) || containsFold(post.Content, query) {
		return true
	}
	return post.Excerpt != nil && containsFold(*post.Excerpt, query)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, CategoryAll) {
		return ""
	}
	return category
}
