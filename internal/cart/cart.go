package cart

// Item is one line in a visitor's cart. Price is the effective unit price in
// whole MAD captured at the time the product was added.
type Item struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     int     `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  *string `json:"imageUrl,omitempty"`
}

// Snapshot is a point-in-time copy of a cart with derived totals.
type Snapshot struct {
	Items     []Item `json:"items"`
	ItemCount int    `json:"itemCount"`
	Total     int    `json:"total"`
}

func buildSnapshot(items []Item) Snapshot {
	copied := make([]Item, len(items))
	copy(copied, items)
	snap := Snapshot{Items: copied}
	for _, item := range copied {
		snap.ItemCount += item.Quantity
		snap.Total += item.Price * item.Quantity
	}
	return snap
}

func validItems(items []Item) bool {
	for _, item := range items {
		if item.ProductID == 0 {
			return false
		}
		if item.Quantity <= 0 {
			return false
		}
		if item.Price < 0 {
			return false
		}
	}
	return true
}
