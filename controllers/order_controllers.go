package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/cart"
	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/services"
	"github.com/yeremiapane/catering-app/utils"
)

type OrderController struct {
	DB       *gorm.DB
	orders   *services.OrderService
	payments *services.PaymentService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService, payments *services.PaymentService) *OrderController {
	return &OrderController{DB: db, orders: orders, payments: payments}
}

// CheckoutRequest adalah isi keranjang yang dikirim client saat checkout.
type CheckoutRequest struct {
	ChildID uint   `json:"child_id" binding:"required"`
	Notes   string `json:"notes"`
	Items   []struct {
		MenuItemID   uint   `json:"menu_item_id" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required,min=1"`
		DeliveryDate string `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	} `json:"items" binding:"required"`
}

// Checkout -> satu checkout menghasilkan tepat satu order untuk satu anak,
// lalu langsung menginisiasi pembayaran dan mengembalikan snap token.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID := currentUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var child models.Child
	if err := oc.DB.Where("id = ? AND user_id = ?", req.ChildID, userID).First(&child).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrNoChild)
		return
	}

	// Harga diambil dari tabel menu saat checkout (captured at order
	// time), bukan dari client.
	session := services.NewCheckoutSession(oc.orders, oc.payments)
	for _, item := range req.Items {
		var menuItem models.MenuItem
		if err := oc.DB.First(&menuItem, item.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("menu item %d tidak ditemukan", item.MenuItemID))
			return
		}
		session.Cart.Add(cart.Entry{
			MenuItemID:   menuItem.ID,
			MenuName:     menuItem.Name,
			UnitPrice:    menuItem.Price,
			ChildID:      child.ID,
			DeliveryDate: item.DeliveryDate,
		})
		key := cart.Key{MenuItemID: menuItem.ID, ChildID: child.ID, DeliveryDate: item.DeliveryDate}
		if err := session.Cart.SetQuantity(key, item.Quantity); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	result, err := session.Checkout(userID, &child, req.Notes)
	switch {
	case err == nil:
		utils.RespondJSON(c, http.StatusCreated, "Order created", result)
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNoChild),
		errors.Is(err, services.ErrChildNotOwned),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrPastDeliveryDate):
		utils.RespondError(c, http.StatusBadRequest, err)
	case result != nil && result.Order != nil:
		// Order sudah tersimpan tapi gateway menolak; kirim order-nya
		// supaya client bisa retry inisiasi pembayaran.
		c.JSON(http.StatusBadGateway, utils.JSONResponse{
			Status:  false,
			Message: "pembayaran belum bisa dibuat, silakan coba lagi",
			Data:    gin.H{"order": result.Order},
		})
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// GetMyOrders -> daftar order milik user, terbaru dulu
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	orders, err := oc.orders.GetOrdersByUser(currentUserID(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order, dibatasi kepemilikan
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.orders.GetOrderForUser(uint(id), currentUserID(c))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
