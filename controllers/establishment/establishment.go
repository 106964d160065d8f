package establishmentControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/gorm"
)

type CreateEstablishmentInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"required,email"`
}

// POST /admin/establishments
func CreateEstablishment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateEstablishmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		establishment := models.Establishment{
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
			Email:   input.Email,
		}
		if err := db.Create(&establishment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create establishment"})
			return
		}
		c.JSON(http.StatusCreated, establishment)
	}
}

// GET /admin/establishments
func GetAllEstablishments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var establishments []models.Establishment
		if err := db.Order("created_at desc").Find(&establishments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch establishments"})
			return
		}
		c.JSON(http.StatusOK, establishments)
	}
}

// GET /admin/establishments/:id
func GetEstablishmentByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment ID"})
			return
		}

		var establishment models.Establishment
		if err := db.Preload("Bags.Items").First(&establishment, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch establishment"})
			}
			return
		}
		c.JSON(http.StatusOK, establishment)
	}
}
