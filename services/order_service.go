package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/cart"
	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/utils"
)

// Validation errors, ditangkap sebelum ada satu pun akses database.
var (
	ErrEmptyCart        = errors.New("keranjang belanja kosong")
	ErrNoChild          = errors.New("silakan pilih anak terlebih dahulu")
	ErrChildNotOwned    = errors.New("data anak bukan milik user ini")
	ErrInvalidQuantity  = errors.New("quantity minimal 1")
	ErrPastDeliveryDate = errors.New("tanggal pengiriman sudah lewat")
)

// OrderService mengubah isi keranjang + anak terpilih menjadi satu order
// header beserta line items, all-or-nothing dari sisi pemanggil.
type OrderService struct {
	db *gorm.DB
	// GenerateOrderNumber bisa diganti di test untuk nomor deterministik.
	GenerateOrderNumber func() string
	Now                 func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:                  db,
		GenerateOrderNumber: utils.GenerateOrderNumber,
		Now:                 time.Now,
	}
}

// CreateOrder membuat order berstatus {pending, pending}. Jika insert line
// items gagal setelah header terlanjur dibuat, header dihapus sebagai
// kompensasi dan error aslinya yang dikembalikan.
func (s *OrderService) CreateOrder(userID uint, entries []cart.Entry, child *models.Child, notes string) (*models.Order, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}
	if child == nil || child.ID == 0 {
		return nil, ErrNoChild
	}
	if child.UserID != userID {
		return nil, ErrChildNotOwned
	}

	now := s.Now()
	orderDate := now.Format("2006-01-02")

	var total int64
	for _, entry := range entries {
		if entry.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if entry.UnitPrice < 0 {
			return nil, fmt.Errorf("harga item %d tidak valid", entry.MenuItemID)
		}
		// Validasi ulang tanggal di server; date picker di client tidak
		// bisa dipercaya sendirian.
		if entry.DeliveryDate < orderDate {
			return nil, ErrPastDeliveryDate
		}
		total += entry.UnitPrice * int64(entry.Quantity)
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	order := models.Order{
		OrderNumber:   s.GenerateOrderNumber(),
		UserID:        userID,
		ChildName:     child.Name,
		ChildClass:    child.ClassName,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Notes:         notesPtr,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.Create(&order).Error; err != nil {
		// Header gagal: tidak ada yang perlu di-rollback
		return nil, fmt.Errorf("gagal membuat pesanan utama: %w", err)
	}

	childID := child.ID
	lineItems := make([]models.OrderLineItem, 0, len(entries))
	for _, entry := range entries {
		lineItems = append(lineItems, models.OrderLineItem{
			OrderID:      order.ID,
			ChildID:      &childID,
			ChildName:    child.Name,
			ChildClass:   child.ClassName,
			MenuItemID:   entry.MenuItemID,
			Quantity:     entry.Quantity,
			UnitPrice:    entry.UnitPrice,
			TotalPrice:   entry.UnitPrice * int64(entry.Quantity),
			DeliveryDate: entry.DeliveryDate,
			OrderDate:    orderDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := s.db.Create(&lineItems).Error; err != nil {
		// Kompensasi: hapus header yang baru dibuat. Kalau penghapusan
		// ikut gagal cukup dicatat; error asli yang harus muncul ke user.
		if delErr := s.db.Delete(&models.Order{}, order.ID).Error; delErr != nil {
			log.Printf("warning: gagal menghapus order %d setelah line items gagal: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("gagal menyimpan detail pesanan: %w", err)
	}

	order.LineItems = lineItems
	return &order, nil
}

// GetOrdersByUser mengembalikan daftar order milik satu user, terbaru dulu.
func (s *OrderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("LineItems").Preload("LineItems.MenuItem").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrderForUser mengambil satu order dengan pembatasan kepemilikan.
func (s *OrderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("LineItems").Preload("LineItems.MenuItem").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
