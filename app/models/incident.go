package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentIncident records a charge that succeeded at the gateway while the
// matching order write failed. Rows here are the reconciliation queue for
// support staff; a charge id must never exist only in a log line.
type PaymentIncident struct {
	gorm.Model
	UserID     uint       `gorm:"not null;index"                json:"user_id"`
	ChargeID   string     `gorm:"size:255;not null;uniqueIndex" json:"charge_id"`
	Amount     int64      `gorm:"not null"                      json:"amount"`
	Detail     string     `gorm:"type:text"                     json:"detail"`
	ResolvedAt *time.Time `json:"resolved_at"`
}
