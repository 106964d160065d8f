package cartControllers

import (
	"testing"
	"time"

	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/apperrors"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRegularEntry(t *testing.T, db *gorm.DB, userID string, itemNames ...string) *models.CartEntry {
	t.Helper()

	est := seedEstablishment(t, db, "forno")
	start, end := pickupOn(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	bag := seedBag(t, db, bagSpec{est.ID, models.BagTypeRegular, true, start, end, itemNames})

	entry, err := AddBag(db, userID, bag.ID)
	require.NoError(t, err)
	return entry
}

func removedIDs(t *testing.T, db *gorm.DB, entryID uint) []uint {
	t.Helper()

	var removed []models.RemovedItem
	require.NoError(t, db.Where("cart_entry_id = ?", entryID).Order("bag_item_id ASC").Find(&removed).Error)
	ids := make([]uint, 0, len(removed))
	for _, r := range removed {
		ids = append(ids, r.BagItemID)
	}
	return ids
}

func TestPersonalize(t *testing.T) {
	pinClock(t)

	t.Run("accumulates removals across calls up to the cap", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")
		entry := seedRegularEntry(t, db, user.ID, "bread", "cake", "pie")
		items := entry.Bag.Items

		require.NoError(t, Personalize(db, user.ID, entry.ID, []uint{items[0].ID}))
		require.Equal(t, []uint{items[0].ID}, removedIDs(t, db, entry.ID))

		require.NoError(t, Personalize(db, user.ID, entry.ID, []uint{items[1].ID}))
		require.Equal(t, []uint{items[0].ID, items[1].ID}, removedIDs(t, db, entry.ID))

		// The third cumulative removal busts the cap; the set stays at two.
		err := Personalize(db, user.ID, entry.ID, []uint{items[2].ID})
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConstraint))
		require.Equal(t, []uint{items[0].ID, items[1].ID}, removedIDs(t, db, entry.ID))
	})

	t.Run("duplicate ids do not double-count", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")
		entry := seedRegularEntry(t, db, user.ID, "bread", "cake", "pie")
		items := entry.Bag.Items

		require.NoError(t, Personalize(db, user.ID, entry.ID, []uint{items[0].ID, items[0].ID}))
		require.Equal(t, []uint{items[0].ID}, removedIDs(t, db, entry.ID))

		// Re-removing an already-removed id plus one new id stays within the cap.
		require.NoError(t, Personalize(db, user.ID, entry.ID, []uint{items[0].ID, items[1].ID}))
		require.Equal(t, []uint{items[0].ID, items[1].ID}, removedIDs(t, db, entry.ID))
	})

	t.Run("two distinct ids in one call succeed", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")
		entry := seedRegularEntry(t, db, user.ID, "bread", "cake", "pie")
		items := entry.Bag.Items

		require.NoError(t, Personalize(db, user.ID, entry.ID, []uint{items[0].ID, items[2].ID}))
		require.Equal(t, []uint{items[0].ID, items[2].ID}, removedIDs(t, db, entry.ID))
	})

	t.Run("rejects an empty id list", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")
		entry := seedRegularEntry(t, db, user.ID, "bread")

		err := Personalize(db, user.ID, entry.ID, nil)
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))

		err = Personalize(db, user.ID, entry.ID, []uint{})
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("rejects a surprise bag regardless of ids", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")
		est := seedEstablishment(t, db, "forno")
		start, end := pickupOn(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		bag := seedBag(t, db, bagSpec{est.ID, models.BagTypeSurprise, true, start, end, []string{"mystery"}})

		entry, err := AddBag(db, user.ID, bag.ID)
		require.NoError(t, err)

		err = Personalize(db, user.ID, entry.ID, []uint{bag.Items[0].ID})
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConstraint))
		require.Empty(t, removedIDs(t, db, entry.ID))
	})

	t.Run("rejects an id not in the bag and applies nothing", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")
		entry := seedRegularEntry(t, db, user.ID, "bread", "cake")
		items := entry.Bag.Items

		// One valid id, one foreign id: the whole call must be rejected.
		err := Personalize(db, user.ID, entry.ID, []uint{items[0].ID, 9999})
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConstraint))
		require.Empty(t, removedIDs(t, db, entry.ID))
	})

	t.Run("rejects a missing entry", func(t *testing.T) {
		db := newTestDB(t)
		user := seedUser(t, db, "user7")

		err := Personalize(db, user.ID, 42, []uint{1})
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("rejects another user's entry as missing", func(t *testing.T) {
		db := newTestDB(t)
		owner := seedUser(t, db, "owner")
		other := seedUser(t, db, "other")
		entry := seedRegularEntry(t, db, owner.ID, "bread", "cake")

		err := Personalize(db, other.ID, entry.ID, []uint{entry.Bag.Items[0].ID})
		require.Error(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}
