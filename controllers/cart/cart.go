package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/apperrors"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/database"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

// Overridable clock for tests.
var timeNow = time.Now

type AddBagInput struct {
	BagID uint `json:"bag_id" binding:"required"`
}

// AddBag creates a cart entry for the given bag. The whole check-then-insert
// sequence runs in one transaction under a FOR UPDATE lock on the user row,
// so two concurrent adds by the same user cannot both pass the
// establishment/day check. The partial unique index on live entries is the
// final authority if they somehow do.
func AddBag(db *gorm.DB, userID string, bagID uint) (*models.CartEntry, error) {
	var entry models.CartEntry

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.LockForUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user not found")
			}
			return apperrors.Storage(err)
		}

		var bag models.Bag
		if err := tx.Preload("Items").First(&bag, "id = ?", bagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("bag not found")
			}
			return apperrors.Storage(err)
		}
		if !bag.Available {
			return apperrors.Conflict("bag is not available anymore")
		}

		pickupDay := bag.PickupDay()

		var count int64
		if err := tx.Model(&models.CartEntry{}).
			Where("user_id = ? AND establishment_id = ? AND pickup_day = ? AND consumed_at IS NULL",
				userID, bag.EstablishmentID, pickupDay).
			Count(&count).Error; err != nil {
			return apperrors.Storage(err)
		}
		if count > 0 {
			return apperrors.Constraint(
				"cart already holds a bag from establishment %d for %s", bag.EstablishmentID, pickupDay)
		}

		entry = models.CartEntry{
			UserID:          userID,
			BagID:           bag.ID,
			EstablishmentID: bag.EstablishmentID,
			PickupDay:       pickupDay,
			CreatedAt:       timeNow(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Constraint(
					"cart already holds a bag from establishment %d for %s", bag.EstablishmentID, pickupDay)
			}
			return apperrors.Storage(err)
		}

		entry.Bag = bag
		entry.RemovedItems = []models.RemovedItem{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveBag deletes the user's live cart entry and its removed-item rows.
// Removing an entry that does not exist for this user is a no-op: clients
// retry removals.
func RemoveBag(db *gorm.DB, userID string, entryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var entry models.CartEntry
		err := tx.Where("id = ? AND user_id = ? AND consumed_at IS NULL", entryID, userID).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.Storage(err)
		}

		if err := tx.Where("cart_entry_id = ?", entry.ID).Delete(&models.RemovedItem{}).Error; err != nil {
			return apperrors.Storage(err)
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return apperrors.Storage(err)
		}
		return nil
	})
}

// GetCart returns the user's live entries in insertion order, with bags,
// items and removed items loaded.
func GetCart(db *gorm.DB, userID string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := db.
		Preload("Bag.Items").
		Preload("RemovedItems").
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return entries, nil
}

// -------- Handlers --------

// POST /user/cart
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddBagInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		entry, err := AddBag(db, userID, input.BagID)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// DELETE /user/cart/:entry_id
func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart entry ID"})
			return
		}

		if err := RemoveBag(db, userID, uint(entryID)); err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart entry removed"})
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		entries, err := GetCart(db, userID)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		entries, err := GetCart(db, userID)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
