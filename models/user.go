package models

import "time"

type User struct {
	ID           string        `gorm:"primaryKey" json:"id"`
	Email        string        `gorm:"unique;not null" json:"email"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	CartEntries  []CartEntry   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart_entries,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:UserID" json:"reservations,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
