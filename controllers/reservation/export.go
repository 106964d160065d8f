package reservationControllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/apperrors"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/establishments/:id/reservations/export
// Downloads an establishment's reservation book as an Excel sheet.
func ExportEstablishmentReservations(db *gorm.DB) gin.HandlerFunc {
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

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Reservations")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Ref", "UserID", "BagID", "BagType", "Price",
			"PickupStart", "PickupEnd", "Status", "CreatedAt", "CanceledAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, r := range reservations {
			row := sheet.AddRow()

			row.AddCell().SetValue(r.ID)
			row.AddCell().SetValue(r.Ref)
			row.AddCell().SetValue(r.UserID)
			row.AddCell().SetValue(r.CartEntry.BagID)
			row.AddCell().SetValue(string(r.CartEntry.Bag.Type))
			row.AddCell().SetValue(r.CartEntry.Bag.Price)
			row.AddCell().SetValue(r.CartEntry.Bag.PickupStart.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(r.CartEntry.Bag.PickupEnd.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(string(r.Status))
			row.AddCell().SetValue(r.CreatedAt.Format("2006-01-02 15:04:05"))
			if r.CanceledAt != nil {
				row.AddCell().SetValue(r.CanceledAt.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
		}

		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=reservations-%d.xlsx", establishmentID))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
