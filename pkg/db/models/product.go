package models

// Product is an artisanal item sold through the store. Prices are whole MAD.
type Product struct {
	ID            uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string  `gorm:"column:name;not null"`
	Description   string  `gorm:"column:description;not null"`
	Price         int     `gorm:"column:price;not null"`
	DiscountPrice *int    `gorm:"column:discount_price"`
	ImageURL      *string `gorm:"column:image_url"`
	Category      string  `gorm:"column:category;not null"`
	IsNew         bool    `gorm:"column:is_new;not null;default:false"`
	InStock       bool    `gorm:"column:in_stock;not null;default:true"`
}

// EffectivePrice returns the discounted price when one is set.
func (p Product) EffectivePrice() int {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}
