package models

import "gorm.io/gorm"

// CartItem is one cart line: (user, item, quantity). The composite unique
// index is what lets addToCart upsert instead of duplicating rows.
type CartItem struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"user_id"`
	ItemID   uint `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"item_id"`
	Quantity int  `gorm:"not null;default:1" json:"quantity"`
	Item     Item `gorm:"foreignKey:ItemID"  json:"item"`
}

// Subtotal is price × quantity for this line, in minor units.
func (c *CartItem) Subtotal() int64 {
	return c.Item.Price * int64(c.Quantity)
}
