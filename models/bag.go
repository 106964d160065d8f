package models

import "time"

type BagType string

const (
	// Bag types
	BagTypeRegular  BagType = "regular"  // Contents are listed and partially removable
	BagTypeSurprise BagType = "surprise" // Contents are hidden and fixed
)

type Bag struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	EstablishmentID uint          `gorm:"index;not null" json:"establishment_id"`
	Establishment   Establishment `gorm:"foreignKey:EstablishmentID" json:"establishment"`
	Type            BagType       `gorm:"type:VARCHAR(20);not null" json:"type"`
	Size            string        `json:"size"` // e.g. "small", "medium", "large"
	Tags            string        `json:"tags"` // comma-separated, e.g. "vegan,gluten free"
	Price           float64       `gorm:"not null" json:"price"`
	PickupStart     time.Time     `gorm:"not null" json:"pickup_start"`
	PickupEnd       time.Time     `gorm:"not null" json:"pickup_end"`
	Available       bool          `gorm:"default:true" json:"available"`
	Items           []BagItem     `gorm:"foreignKey:BagID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type BagItem struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	BagID    uint   `gorm:"index" json:"bag_id"`
	Name     string `gorm:"not null" json:"name"`
	Quantity int    `gorm:"not null" json:"quantity"`
}

// PickupDay returns the calendar day of the pickup window start, truncated
// in UTC. All establishment/day exclusivity checks compare these strings.
func (b *Bag) PickupDay() string {
	return DayOf(b.PickupStart)
}

// DayOf truncates an instant to its UTC calendar day.
func DayOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
