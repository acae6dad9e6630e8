package models

import "gorm.io/gorm"

// Order is the immutable record of a successful checkout. Total holds the
// gateway-confirmed amount in minor units and Charge the gateway charge id;
// neither is ever updated after creation.
type Order struct {
	gorm.Model
	UserID uint        `gorm:"not null;index" json:"user_id"`
	Total  int64       `gorm:"not null"       json:"total"`
	Charge string      `gorm:"size:255;not null;uniqueIndex" json:"charge"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots the purchased item at checkout time, decoupled from
// the live Item row so later catalogue edits never rewrite order history.
type OrderItem struct {
	gorm.Model
	OrderID     uint   `gorm:"not null;index" json:"order_id"`
	ItemID      uint   `gorm:"index"          json:"item_id"` // original catalogue id, informational only
	Title       string `gorm:"size:255"       json:"title"`
	Description string `gorm:"type:text"      json:"description"`
	Image       string `gorm:"size:512"       json:"image"`
	LargeImage  string `gorm:"size:512"       json:"largeImage"`
	Price       int64  `gorm:"not null"       json:"price"`
	Quantity    int    `gorm:"not null"       json:"quantity"`
}

// SnapshotOf builds an OrderItem from a cart line.
func SnapshotOf(line CartItem) OrderItem {
	return OrderItem{
		ItemID:      line.ItemID,
		Title:       line.Item.Title,
		Description: line.Item.Description,
		Image:       line.Item.Image,
		LargeImage:  line.Item.LargeImage,
		Price:       line.Item.Price,
		Quantity:    line.Quantity,
	}
}
