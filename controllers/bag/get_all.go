package bagControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

// GetBags lists bags with optional filters. By default only available bags
// are returned; pass all=true for the full catalog (admin views).
// Query params: type, establishment_id, max_price, tag, all
func GetBags(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Bag{}).Preload("Items")

		if c.DefaultQuery("all", "false") != "true" {
			query = query.Where("available = ?", true)
		}

		if t := c.Query("type"); t != "" {
			bagType, err := mapBagType(t)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("type = ?", bagType)
		}

		if estStr := c.Query("establishment_id"); estStr != "" {
			estID, err := strconv.ParseUint(estStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment_id"})
				return
			}
			query = query.Where("establishment_id = ?", uint(estID))
		}

		if maxStr := c.Query("max_price"); maxStr != "" {
			maxPrice, err := strconv.ParseFloat(maxStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", maxPrice)
		}

		if tag := c.Query("tag"); tag != "" {
			query = query.Where("tags LIKE ?", "%"+strings.ToLower(tag)+"%")
		}

		var bags []models.Bag
		if err := query.Order("pickup_start ASC").Find(&bags).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bags"})
			return
		}
		c.JSON(http.StatusOK, bags)
	}
}
