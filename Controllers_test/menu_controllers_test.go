package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/controllers"
	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/utils"
)

func setupTestDBForMenus() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.MenuItem{}, &models.DailyMenu{})
	if err != nil {
		panic(err)
	}
	// Seed dua menu pada tanggal berbeda
	db.Create(&models.MenuItem{Name: "Nasi Goreng", Price: 15000})
	db.Create(&models.MenuItem{Name: "Mie Ayam", Price: 12000})
	db.Create(&models.DailyMenu{MenuItemID: 1, MenuDate: "2030-01-06"})
	db.Create(&models.DailyMenu{MenuItemID: 2, MenuDate: "2030-01-07"})
	return db
}

func setupMenuRouter(db *gorm.DB, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("role", role)
		c.Next()
	})
	menuCtrl := controllers.NewMenuController(db)
	router.GET("/menus/daily", menuCtrl.GetDailyMenus)
	router.GET("/menus", menuCtrl.GetAllMenuItems)
	router.POST("/menus", menuCtrl.CreateMenuItem)
	router.POST("/menus/daily", menuCtrl.CreateDailyMenu)
	return router
}

func TestGetDailyMenusFilteredByDate(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus()
	router := setupMenuRouter(db, "parent")

	req, _ := http.NewRequest("GET", "/menus/daily?date=2030-01-06", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
	menu := data[0].(map[string]interface{})
	assert.Equal(t, "2030-01-06", menu["menu_date"])
	item := menu["menu_item"].(map[string]interface{})
	assert.Equal(t, "Nasi Goreng", item["name"])
}

func TestGetDailyMenusWithoutDateReturnsAll(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus()
	router := setupMenuRouter(db, "parent")

	req, _ := http.NewRequest("GET", "/menus/daily", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 2)
}

func TestCreateMenuItemRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus()

	parent := setupMenuRouter(db, "parent")
	w := postJSON(parent, "/menus", map[string]interface{}{
		"name":  "Ayam Geprek",
		"price": 18000,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := setupMenuRouter(db, "admin")
	w = postJSON(admin, "/menus", map[string]interface{}{
		"name":  "Ayam Geprek",
		"price": 18000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(3), count)
}
