package models

import "time"

// CartEntry is one user's personalizable claim on a bag. The cart itself is
// not stored: it is the set of a user's entries whose ConsumedAt is null.
//
// EstablishmentID and PickupDay are copied from the bag at insert time so the
// one-bag-per-establishment-per-day rule can be enforced by a partial unique
// index on (user_id, establishment_id, pickup_day) over live entries.
type CartEntry struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string        `gorm:"index;not null" json:"user_id"`
	BagID           uint          `gorm:"index;not null" json:"bag_id"`
	Bag             Bag           `gorm:"foreignKey:BagID" json:"bag"`
	EstablishmentID uint          `gorm:"not null" json:"establishment_id"`
	PickupDay       string        `gorm:"type:VARCHAR(10);not null" json:"pickup_day"`
	RemovedItems    []RemovedItem `gorm:"foreignKey:CartEntryID;constraint:OnDelete:CASCADE" json:"removed_items"`
	ConsumedAt      *time.Time    `json:"consumed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// RemovedItem flags a bag item as excluded from one cart entry. The bag's own
// item rows are never touched.
type RemovedItem struct {
	ID          uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CartEntryID uint `gorm:"index;uniqueIndex:idx_removed_entry_item" json:"cart_entry_id"`
	BagItemID   uint `gorm:"uniqueIndex:idx_removed_entry_item" json:"bag_item_id"`
}

// MaxRemovedItems caps how many items may be excluded from a regular bag.
const MaxRemovedItems = 2

// RemainingItems returns the bag's items minus the entry's removed set.
// Bag.Items must be loaded.
func (e *CartEntry) RemainingItems() []BagItem {
	removed := make(map[uint]bool, len(e.RemovedItems))
	for _, r := range e.RemovedItems {
		removed[r.BagItemID] = true
	}
	items := make([]BagItem, 0, len(e.Bag.Items))
	for _, it := range e.Bag.Items {
		if !removed[it.ID] {
			items = append(items, it)
		}
	}
	return items
}
