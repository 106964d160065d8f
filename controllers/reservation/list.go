package reservationControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/apperrors"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

// StatusFilter selects which reservations a listing returns.
type StatusFilter string

const (
	FilterActive   StatusFilter = "active"
	FilterCanceled StatusFilter = "canceled"
	FilterAll      StatusFilter = "all"
)

// mapStatusFilter parses a filter string; an empty string means "all".
func mapStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(s) {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(FilterActive):
		return FilterActive, nil
	case string(FilterCanceled):
		return FilterCanceled, nil
	default:
		return "", apperrors.Validation("invalid filter %q: want active, canceled or all", s)
	}
}

// ListReservationsByUser returns the user's reservations in creation order.
func ListReservationsByUser(db *gorm.DB, userID string, filter StatusFilter) ([]models.Reservation, error) {
	q := db.
		Preload("CartEntry.Bag.Items").
		Preload("CartEntry.RemovedItems").
		Where("user_id = ?", userID)

	switch filter {
	case FilterActive:
		q = q.Where("status = ?", models.ReservationStatusActive)
	case FilterCanceled:
		q = q.Where("status = ?", models.ReservationStatusCanceled)
	}

	var reservations []models.Reservation
	if err := q.Order("id ASC").Find(&reservations).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return reservations, nil
}

// ListReservationsByEstablishment returns every reservation, any status,
// whose bag belongs to the establishment.
func ListReservationsByEstablishment(db *gorm.DB, establishmentID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := db.
		Preload("CartEntry.Bag.Items").
		Preload("CartEntry.RemovedItems").
		Where("establishment_id = ?", establishmentID).
		Order("id ASC").
		Find(&reservations).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return reservations, nil
}

// CheckEstablishmentConstraint reports whether the user already holds a
// reservation for the establishment created on the given UTC day. Pure
// read, no side effects; the reservation batch runs the same predicate
// before committing. Cancellation does not flip the predicate back: a
// canceled reservation keeps blocking its establishment/day slot, the same
// way it keeps its bag off the market (see DESIGN.md).
func CheckEstablishmentConstraint(db *gorm.DB, userID string, day time.Time, establishmentID uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Reservation{}).
		Where("user_id = ? AND establishment_id = ? AND day = ?",
			userID, establishmentID, models.DayOf(day)).
		Count(&count).Error; err != nil {
		return false, apperrors.Storage(err)
	}
	return count > 0, nil
}

// -------- Handlers --------

// GET /user/reservations?filter=active|canceled|all
func ListUserReservationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		filter, err := mapStatusFilter(c.Query("filter"))
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		reservations, err := ListReservationsByUser(db, userID, filter)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}

// GET /user/reservations/check?establishment_id=5&day=2024-01-10
// Preview of the exclusivity rule before committing a reservation.
func CheckConstraintHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		establishmentID, err := strconv.ParseUint(c.Query("establishment_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment_id"})
			return
		}

		day := timeNow()
		if raw := c.Query("day"); raw != "" {
			day, err = time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day, want YYYY-MM-DD"})
				return
			}
		}

		held, err := CheckEstablishmentConstraint(db, userID, day, uint(establishmentID))
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"constraint_violated": held})
	}
}

// GET /admin/establishments/:id/reservations
func ListEstablishmentReservationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		establishmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment ID"})
			return
		}

		reservations, err := ListReservationsByEstablishment(db, uint(establishmentID))
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, reservations)
	}
}
