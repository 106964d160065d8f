package bagControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

type UpdateBagInput struct {
	Size        *string    `json:"size"`
	Tags        *string    `json:"tags"`
	Price       *float64   `json:"price"`
	PickupStart *time.Time `json:"pickup_start"`
	PickupEnd   *time.Time `json:"pickup_end"`
}

type SetAvailabilityInput struct {
	Available *bool `json:"available" binding:"required"`
}

// PUT /admin/bags/:id
// Administrative update of a bag's descriptive fields. Type and item list
// are fixed at creation; availability has its own endpoint.
func UpdateBag(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bag ID"})
			return
		}

		var bag models.Bag
		if err := db.First(&bag, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Bag not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bag"})
			}
			return
		}

		var input UpdateBagInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Size != nil {
			updates["size"] = *input.Size
		}
		if input.Tags != nil {
			updates["tags"] = *input.Tags
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.PickupStart != nil {
			updates["pickup_start"] = *input.PickupStart
		}
		if input.PickupEnd != nil {
			updates["pickup_end"] = *input.PickupEnd
		}

		newStart := bag.PickupStart
		newEnd := bag.PickupEnd
		if input.PickupStart != nil {
			newStart = *input.PickupStart
		}
		if input.PickupEnd != nil {
			newEnd = *input.PickupEnd
		}
		if newEnd.Before(newStart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pickup_end must not precede pickup_start"})
			return
		}

		if len(updates) > 0 {
			if err := db.Model(&bag).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bag"})
				return
			}
		}

		c.JSON(http.StatusOK, bag)
	}
}

// PUT /admin/bags/:id/availability
func SetBagAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bag ID"})
			return
		}

		var input SetAvailabilityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result := db.Model(&models.Bag{}).Where("id = ?", uint(id)).
			Update("available", *input.Available)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bag not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bag availability updated"})
	}
}
