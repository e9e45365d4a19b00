package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/utils"
)

// MenuController melayani daftar menu harian untuk halaman pemesanan dan
// CRUD tipis menu item untuk admin.
type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetDailyMenus -> menu untuk satu tanggal (default: semua tanggal mendatang)
func (mc *MenuController) GetDailyMenus(c *gin.Context) {
	date := c.Query("date")

	var menus []models.DailyMenu
	q := mc.DB.Preload("MenuItem")
	if date != "" {
		q = q.Where("menu_date = ?", date)
	}
	if err := q.Order("menu_date ASC").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily menus", menus)
}

func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items", items)
}

// CreateMenuItem (admin)
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	if role, _ := c.Get("role"); role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       int64   `json:"price" binding:"required,min=0"`
		ImageUrl    *string `json:"image_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageUrl:    req.ImageUrl,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// CreateDailyMenu menjadwalkan satu menu item pada satu tanggal (admin).
func (mc *MenuController) CreateDailyMenu(c *gin.Context) {
	if role, _ := c.Get("role"); role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		MenuDate   string `json:"menu_date" binding:"required"` // YYYY-MM-DD
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.DailyMenu{
		MenuItemID: req.MenuItemID,
		MenuDate:   req.MenuDate,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Daily menu created", menu)
}
