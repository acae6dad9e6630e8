package models

import "gorm.io/gorm"

// Item is a catalogue entry. Price is in minor currency units (cents) so
// cart arithmetic stays integral.
type Item struct {
	gorm.Model
	Title       string `gorm:"size:255;not null;index" json:"title"`
	Description string `gorm:"type:text"               json:"description"`
	Image       string `gorm:"size:512"                json:"image"`
	LargeImage  string `gorm:"size:512"                json:"largeImage"`
	Price       int64  `gorm:"not null;default:0"      json:"price"`
	UserID      uint   `gorm:"not null;index"          json:"user_id"`
}
