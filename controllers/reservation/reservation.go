package reservationControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/apperrors"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/database"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

// Overridable clock for tests.
var timeNow = time.Now

// generateReservationRef returns a unique, human-shareable reservation code.
func generateReservationRef() string {
	return timeNow().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

// CreateReservationsForCart converts every live entry of the user's cart
// into a reservation, in cart order, inside a single transaction. The first
// failing entry aborts the whole batch: no reservation is committed and no
// bag is marked unavailable.
//
// Per entry: the pickup window must not have closed, the bag must not be
// personalized down to nothing, the user must not already hold a
// reservation for the same establishment created the same UTC day, and the
// bag must still be available. Availability is re-read under a FOR UPDATE
// lock right before the flip, never trusted from cart-add time.
//
// Canceled reservations still count toward the establishment/day block:
// cancellation reverts nothing, neither the bag's availability nor the
// day's slot (see DESIGN.md).
func CreateReservationsForCart(db *gorm.DB, userID string) ([]models.Reservation, error) {
	var reservations []models.Reservation

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.LockForUpdate(tx).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user not found")
			}
			return apperrors.Storage(err)
		}

		var entries []models.CartEntry
		if err := tx.
			Preload("Bag.Items").
			Preload("RemovedItems").
			Where("user_id = ? AND consumed_at IS NULL", userID).
			Order("id ASC").
			Find(&entries).Error; err != nil {
			return apperrors.Storage(err)
		}
		if len(entries) == 0 {
			return apperrors.Validation("cart is empty")
		}

		for i := range entries {
			entry := &entries[i]
			now := timeNow()

			if !entry.Bag.PickupEnd.After(now) {
				return apperrors.Constraint(
					"cart entry %d: pickup window for the bag has expired", entry.ID)
			}

			if len(entry.RemainingItems()) == 0 {
				return apperrors.Constraint(
					"cart entry %d: bag has no items left after personalization", entry.ID)
			}

			day := models.DayOf(now)
			var count int64
			if err := tx.Model(&models.Reservation{}).
				Where("user_id = ? AND establishment_id = ? AND day = ?",
					userID, entry.EstablishmentID, day).
				Count(&count).Error; err != nil {
				return apperrors.Storage(err)
			}
			if count > 0 {
				return apperrors.Constraint(
					"cart entry %d: a reservation for establishment %d already exists today",
					entry.ID, entry.EstablishmentID)
			}

			var bag models.Bag
			if err := database.LockForUpdate(tx).First(&bag, "id = ?", entry.BagID).Error; err != nil {
				return apperrors.Storage(err)
			}
			if !bag.Available {
				return apperrors.Conflict("cart entry %d: bag is not available anymore", entry.ID)
			}

			reservation := models.Reservation{
				Ref:             generateReservationRef(),
				UserID:          userID,
				CartEntryID:     entry.ID,
				EstablishmentID: entry.EstablishmentID,
				Day:             day,
				Status:          models.ReservationStatusActive,
				CreatedAt:       now,
			}
			if err := tx.Create(&reservation).Error; err != nil {
				return apperrors.Storage(err)
			}

			if err := tx.Model(&models.Bag{}).Where("id = ?", bag.ID).
				Update("available", false).Error; err != nil {
				return apperrors.Storage(err)
			}

			if err := tx.Model(entry).Update("consumed_at", now).Error; err != nil {
				return apperrors.Storage(err)
			}

			reservation.CartEntry = *entry
			reservations = append(reservations, reservation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// CancelReservation marks the user's reservation canceled. Canceling a
// missing or already-canceled reservation is a no-op, since retried cancels
// are expected client behavior. The bag's availability is not restored: a
// canceled bag stays off the market (see DESIGN.md).
func CancelReservation(db *gorm.DB, userID string, reservationID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		err := tx.Where("id = ? AND user_id = ?", reservationID, userID).
			First(&reservation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.Storage(err)
		}
		if reservation.Status == models.ReservationStatusCanceled {
			return nil
		}

		now := timeNow()
		updates := map[string]interface{}{
			"status":      models.ReservationStatusCanceled,
			"canceled_at": now,
		}
		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return apperrors.Storage(err)
		}
		return nil
	})
}

// -------- Handlers --------

// POST /user/reservations
func CreateReservationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		reservations, err := CreateReservationsForCart(db, userID)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, reservations)
	}
}

// DELETE /user/reservations/:reservation_id
func CancelReservationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		reservationID, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
			return
		}

		if err := CancelReservation(db, userID, uint(reservationID)); err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Reservation canceled"})
	}
}
