package bagControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

type BagItemInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CreateBagInput struct {
	EstablishmentID uint           `json:"establishment_id" binding:"required"`
	Type            string         `json:"type" binding:"required"`
	Size            string         `json:"size"`
	Tags            string         `json:"tags"`
	Price           float64        `json:"price" binding:"required,gt=0"`
	PickupStart     time.Time      `json:"pickup_start" binding:"required"`
	PickupEnd       time.Time      `json:"pickup_end" binding:"required"`
	Items           []BagItemInput `json:"items"`
}

// POST /admin/bags
func CreateBag(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateBagInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		bagType, err := mapBagType(input.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.PickupEnd.Before(input.PickupStart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pickup_end must not precede pickup_start"})
			return
		}

		var establishment models.Establishment
		if err := db.First(&establishment, "id = ?", input.EstablishmentID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate establishment"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Establishment does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		items := make([]models.BagItem, 0, len(input.Items))
		for _, it := range input.Items {
			items = append(items, models.BagItem{Name: it.Name, Quantity: it.Quantity})
		}

		bag := models.Bag{
			EstablishmentID: input.EstablishmentID,
			Type:            bagType,
			Size:            input.Size,
			Tags:            input.Tags,
			Price:           input.Price,
			PickupStart:     input.PickupStart,
			PickupEnd:       input.PickupEnd,
			Available:       true,
			Items:           items,
		}

		if err := db.Create(&bag).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bag"})
			return
		}

		c.JSON(http.StatusCreated, bag)
	}
}
