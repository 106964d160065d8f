package routes

import (
	"github.com/gin-gonic/gin"
	bagControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/bag"
	cartControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/cart"
	reservationControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/reservation"
	userControllers "github.com/polito-WA1-2025-exam/labs-strictmode-sub000/controllers/user"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Browse Bags ────────────────
		userGroup.GET("/bags", bagControllers.GetBags(db))        // GET /user/bags
		userGroup.GET("/bags/:id", bagControllers.GetBagByID(db)) // GET /user/bags/:id

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                          // GET /user/cart
			cartGroup.POST("/", cartControllers.AddToCartHandler(db))                    // POST /user/cart
			cartGroup.DELETE("/:entry_id", cartControllers.RemoveFromCartHandler(db))    // DELETE /user/cart/:entry_id
			cartGroup.DELETE("/:entry_id/items", cartControllers.PersonalizeHandler(db)) // DELETE /user/cart/:entry_id/items
		}

		// ──────────────── Reservations ────────────────
		reservationGroup := userGroup.Group("/reservations")
		{
			reservationGroup.POST("/", reservationControllers.CreateReservationsHandler(db))                 // POST /user/reservations
			reservationGroup.GET("/", reservationControllers.ListUserReservationsHandler(db))                // GET /user/reservations?filter=
			reservationGroup.GET("/check", reservationControllers.CheckConstraintHandler(db))                // GET /user/reservations/check
			reservationGroup.DELETE("/:reservation_id", reservationControllers.CancelReservationHandler(db)) // DELETE /user/reservations/:reservation_id
		}
	}
}
