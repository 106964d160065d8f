package routes

import (
	"github.com/gin-gonic/gin"
	bagControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/bag"
	cartControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/cart"
	establishmentControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/establishment"
	reservationControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/reservation"
	userControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/user"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Establishment Management ───────────
		establishmentAdmin := adminGroup.Group("/establishments")
		{
			establishmentAdmin.POST("", establishmentControllers.CreateEstablishment(db))
			establishmentAdmin.GET("", establishmentControllers.GetAllEstablishments(db))
			establishmentAdmin.GET("/:id", establishmentControllers.GetEstablishmentByID(db))
			establishmentAdmin.GET("/:id/reservations", reservationControllers.ListEstablishmentReservationsHandler(db))
			establishmentAdmin.GET("/:id/reservations/export", reservationControllers.ExportEstablishmentReservations(db))
		}

		// ─────────── Bag Management ───────────
		bagAdmin := adminGroup.Group("/bags")
		{
			bagAdmin.POST("", bagControllers.CreateBag(db))
			bagAdmin.GET("", bagControllers.GetBags(db))
			bagAdmin.GET("/:id", bagControllers.GetBagByID(db))
			bagAdmin.PUT("/:id", bagControllers.UpdateBag(db))
			bagAdmin.PUT("/:id/availability", bagControllers.SetBagAvailability(db))
		}

		// ─────────── Cart Inspection ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
