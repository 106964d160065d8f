package models

import "time"

type ReservationStatus string

const (
	// Reservation statuses. Canceled is terminal: a canceled reservation is
	// kept forever and never flips back to active.
	ReservationStatusActive   ReservationStatus = "active"
	ReservationStatusCanceled ReservationStatus = "canceled"
)

type Reservation struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref         string            `gorm:"uniqueIndex;not null" json:"ref"`
	UserID      string            `gorm:"index;not null" json:"user_id"`
	CartEntryID uint              `gorm:"uniqueIndex;not null" json:"cart_entry_id"` // an entry is consumed at most once, ever
	CartEntry   CartEntry         `gorm:"foreignKey:CartEntryID" json:"cart_entry"`
	// EstablishmentID and Day are copied from the bag and the creation
	// instant so the one-reservation-per-establishment-per-day rule is a
	// plain two-column lookup.
	EstablishmentID uint              `gorm:"index;not null" json:"establishment_id"`
	Day             string            `gorm:"type:VARCHAR(10);not null" json:"day"`
	Status          ReservationStatus `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	CanceledAt      *time.Time        `json:"canceled_at,omitempty"`
}
