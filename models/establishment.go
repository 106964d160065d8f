package models

import "time"

type Establishment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `gorm:"unique" json:"email"`
	Bags      []Bag  `gorm:"foreignKey:EstablishmentID" json:"bags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
