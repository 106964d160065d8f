package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/apperrors"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

type PersonalizeInput struct {
	RemovedItemIDs []uint `json:"removed_item_ids"`
}

// Personalize unions the requested item ids into the entry's removed set.
// The call is all-or-nothing: any invalid id or a breach of the removal cap
// leaves the removed set untouched. Ids are treated as a set, so repeating
// an already-removed id neither fails nor counts twice.
func Personalize(db *gorm.DB, userID string, entryID uint, removedItemIDs []uint) error {
	if len(removedItemIDs) == 0 {
		return apperrors.Validation("must specify at least one item to remove")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var entry models.CartEntry
		err := tx.Preload("Bag.Items").Preload("RemovedItems").
			Where("id = ? AND user_id = ? AND consumed_at IS NULL", entryID, userID).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("cart entry not found")
		}
		if err != nil {
			return apperrors.Storage(err)
		}

		if entry.Bag.Type != models.BagTypeRegular {
			return apperrors.Constraint("a non-regular bag cannot be personalized")
		}

		inBag := make(map[uint]bool, len(entry.Bag.Items))
		for _, it := range entry.Bag.Items {
			inBag[it.ID] = true
		}

		union := make(map[uint]bool, len(entry.RemovedItems)+len(removedItemIDs))
		for _, r := range entry.RemovedItems {
			union[r.BagItemID] = true
		}

		var added []uint
		for _, id := range removedItemIDs {
			if !inBag[id] {
				return apperrors.Constraint("item with id %d is not in the bag", id)
			}
			if !union[id] {
				union[id] = true
				added = append(added, id)
			}
		}

		if len(union) > models.MaxRemovedItems {
			return apperrors.Constraint(
				"cannot remove more than %d items from the bag", models.MaxRemovedItems)
		}

		for _, id := range added {
			removed := models.RemovedItem{CartEntryID: entry.ID, BagItemID: id}
			if err := tx.Create(&removed).Error; err != nil {
				return apperrors.Storage(err)
			}
		}
		return nil
	})
}

// DELETE /user/cart/:entry_id/items
func PersonalizeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart entry ID"})
			return
		}

		var input PersonalizeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := Personalize(db, userID, uint(entryID), input.RemovedItemIDs); err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bag personalized"})
	}
}
