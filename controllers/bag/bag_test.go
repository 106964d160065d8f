package bagControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/database"
	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bags", CreateBag(db))
	r.GET("/bags", GetBags(db))
	r.GET("/bags/:id", GetBagByID(db))
	r.PUT("/bags/:id/availability", SetBagAvailability(db))
	return r
}

func seedEstablishment(t *testing.T, db *gorm.DB) models.Establishment {
	t.Helper()
	establishment := models.Establishment{Name: "forno", Email: "forno@food.example.com"}
	require.NoError(t, db.Create(&establishment).Error)
	return establishment
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBag(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	est := seedEstablishment(t, db)

	t.Run("creates a regular bag with items", func(t *testing.T) {
		w := postJSON(r, "/bags", `{
			"establishment_id": `+jsonUint(est.ID)+`,
			"type": "regular",
			"size": "medium",
			"tags": "vegan",
			"price": 7.5,
			"pickup_start": "2024-01-10T18:00:00Z",
			"pickup_end": "2024-01-10T20:00:00Z",
			"items": [{"name": "bread", "quantity": 2}, {"name": "cake", "quantity": 1}]
		}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var bag models.Bag
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bag))
		require.Equal(t, models.BagTypeRegular, bag.Type)
		require.True(t, bag.Available)
		require.Len(t, bag.Items, 2)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		w := postJSON(r, "/bags", `{
			"establishment_id": `+jsonUint(est.ID)+`,
			"type": "mystery",
			"price": 5,
			"pickup_start": "2024-01-10T18:00:00Z",
			"pickup_end": "2024-01-10T20:00:00Z"
		}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an inverted pickup window", func(t *testing.T) {
		w := postJSON(r, "/bags", `{
			"establishment_id": `+jsonUint(est.ID)+`,
			"type": "surprise",
			"price": 5,
			"pickup_start": "2024-01-10T20:00:00Z",
			"pickup_end": "2024-01-10T18:00:00Z"
		}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a zero item quantity", func(t *testing.T) {
		w := postJSON(r, "/bags", `{
			"establishment_id": `+jsonUint(est.ID)+`,
			"type": "regular",
			"price": 5,
			"pickup_start": "2024-01-10T18:00:00Z",
			"pickup_end": "2024-01-10T20:00:00Z",
			"items": [{"name": "bread", "quantity": 0}]
		}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a missing establishment", func(t *testing.T) {
		w := postJSON(r, "/bags", `{
			"establishment_id": 9999,
			"type": "regular",
			"price": 5,
			"pickup_start": "2024-01-10T18:00:00Z",
			"pickup_end": "2024-01-10T20:00:00Z"
		}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBagsFiltersUnavailable(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	est := seedEstablishment(t, db)

	start := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	available := models.Bag{EstablishmentID: est.ID, Type: models.BagTypeRegular, Price: 5,
		PickupStart: start, PickupEnd: start.Add(time.Hour), Available: true}
	sold := models.Bag{EstablishmentID: est.ID, Type: models.BagTypeSurprise, Price: 5,
		PickupStart: start, PickupEnd: start.Add(time.Hour), Available: false}
	require.NoError(t, db.Create(&available).Error)
	require.NoError(t, db.Create(&sold).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bags", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var bags []models.Bag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bags))
	require.Len(t, bags, 1)
	require.Equal(t, available.ID, bags[0].ID)

	// all=true includes the sold-out bag
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bags?all=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bags))
	require.Len(t, bags, 2)
}

func TestSetBagAvailability(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	est := seedEstablishment(t, db)

	start := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	bag := models.Bag{EstablishmentID: est.ID, Type: models.BagTypeRegular, Price: 5,
		PickupStart: start, PickupEnd: start.Add(time.Hour), Available: true}
	require.NoError(t, db.Create(&bag).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bags/"+jsonUint(bag.ID)+"/availability",
		strings.NewReader(`{"available": false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Bag
	require.NoError(t, db.First(&reloaded, bag.ID).Error)
	require.False(t, reloaded.Available)

	// Unknown bag id is a 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/bags/999/availability",
		strings.NewReader(`{"available": true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func jsonUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
