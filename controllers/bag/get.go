package bagControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

// mapBagType parses a bag type string.
func mapBagType(s string) (models.BagType, error) {
	switch strings.ToLower(s) {
	case string(models.BagTypeRegular):
		return models.BagTypeRegular, nil
	case string(models.BagTypeSurprise):
		return models.BagTypeSurprise, nil
	default:
		return "", errors.New("invalid bag type: want regular or surprise")
	}
}

// GetBagByID returns a single bag with its items.
// URL param: /bags/:id
func GetBagByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bag ID"})
			return
		}

		var bag models.Bag
		if err := db.Preload("Items").Preload("Establishment").First(&bag, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Bag not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bag"})
			}
			return
		}
		c.JSON(http.StatusOK, bag)
	}
}
