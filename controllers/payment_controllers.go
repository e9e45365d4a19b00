package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/services"
	"github.com/yeremiapane/catering-app/utils"
)

type PaymentController struct {
	DB       *gorm.DB
	midtrans *services.MidtransService
	payments *services.PaymentService
}

func NewPaymentController(db *gorm.DB, midtrans *services.MidtransService, payments *services.PaymentService) *PaymentController {
	return &PaymentController{DB: db, midtrans: midtrans, payments: payments}
}

// CreatePayment menginisiasi (atau mengulang) pembayaran untuk order yang
// masih pending. Correlation id baru dicetak setiap pemanggilan; order tidak
// pernah ditandai paid di sini.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	type request struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := currentUserID(c)

	var order models.Order
	err := pc.DB.Preload("LineItems").Preload("LineItems.MenuItem").Preload("User").
		Where("id = ? AND user_id = ?", req.OrderID, userID).
		First(&order).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order ini tidak menunggu pembayaran"))
		return
	}

	token, err := pc.payments.InitiatePayment(&order)
	if err != nil {
		utils.ErrorLogger.Printf("Payment initiation failed for order %d: %v", order.ID, err)
		utils.RespondError(c, http.StatusBadGateway, errors.New("pembayaran belum bisa dibuat, silakan coba lagi"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment created", gin.H{
		"snap_token": token,
	})
}

// midtransNotification adalah body notifikasi yang dikirim Midtrans.
type midtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	SignatureKey      string `json:"signature_key"`
}

// HandlePaymentNotification adalah webhook Midtrans: satu-satunya penulis
// status/payment_status order setelah order dibuat. Verifikasi signature
// dilakukan sebelum side effect apa pun; endpoint ini tidak punya proteksi
// lain, jadi signature check inilah gerbangnya.
func (pc *PaymentController) HandlePaymentNotification(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Failed to read request body")
		return
	}

	var notification midtransNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		c.String(http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !pc.midtrans.ValidateSignature(notification.OrderID, notification.StatusCode, notification.GrossAmount, notification.SignatureKey) {
		utils.ErrorLogger.Printf("Invalid Midtrans signature for order %s", notification.OrderID)
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	if err := pc.payments.ApplyNotification(notification.OrderID, notification.TransactionID, notification.TransactionStatus); err != nil {
		utils.ErrorLogger.Printf("Failed to apply Midtrans notification for order %s: %v", notification.OrderID, err)
		// 5xx supaya Midtrans mencoba mengirim ulang
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	// 200 juga untuk kasus no-op/status asing agar gateway berhenti retry
	c.String(http.StatusOK, "OK")
}

// GetMidtransConfig mengembalikan konfigurasi yang aman untuk client
// (client key untuk memuat Snap.js, bukan server key).
func (pc *PaymentController) GetMidtransConfig(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Midtrans configuration", gin.H{
		"client_key":    pc.midtrans.ClientKey(),
		"is_production": pc.midtrans.IsProduction(),
	})
}
