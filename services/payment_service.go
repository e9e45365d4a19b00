package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/utils"
)

// PaymentService menangani inisiasi pembayaran ke Midtrans dan penerapan
// notifikasi webhook ke order. Service ini tidak pernah menandai order
// sebagai paid; transisi itu hanya milik ApplyNotification yang dipanggil
// webhook handler setelah signature terverifikasi.
type PaymentService struct {
	db       *gorm.DB
	midtrans *MidtransService
	// GenerateCorrelationID memakai skema yang sama dengan nomor order;
	// bisa diganti di test.
	GenerateCorrelationID func() string
}

func NewPaymentService(db *gorm.DB, midtrans *MidtransService) *PaymentService {
	return &PaymentService{
		db:                    db,
		midtrans:              midtrans,
		GenerateCorrelationID: utils.GenerateOrderNumber,
	}
}

// advisoryUpdate adalah write yang kegagalannya disengaja untuk ditoleransi:
// cukup dicatat, tidak menggagalkan alur. Dipakai untuk field yang bukan
// jalur correctness utama (correlation id, snap token).
func (s *PaymentService) advisoryUpdate(orderID uint, updates map[string]interface{}, what string) {
	if err := s.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		log.Printf("warning: advisory update %s untuk order %d gagal: %v", what, orderID, err)
	}
}

// InitiatePayment meminta snap token ke Midtrans untuk satu order yang
// sudah dipreload LineItems.MenuItem dan User-nya. Setiap pemanggilan
// mencetak correlation id baru; retry setelah gagal memakai id segar.
// Order tetap {pending, pending} apapun hasilnya.
func (s *PaymentService) InitiatePayment(order *models.Order) (string, error) {
	correlationID := s.GenerateCorrelationID()

	// Simpan correlation id ke order sebelum memanggil gateway. Kalau
	// update ini gagal tetap lanjut: gateway-lah penentu apakah
	// pembayaran bisa jalan, inkonsistensinya cukup dicatat.
	s.advisoryUpdate(order.ID, map[string]interface{}{
		"midtrans_order_id": correlationID,
		"updated_at":        time.Now(),
	}, "midtrans_order_id")

	customer := CustomerDetails{
		FirstName: order.GetCustomerName(),
		Email:     order.GetCustomerEmail(),
		Phone:     order.GetCustomerPhone(),
	}

	items := make([]ItemDetail, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		name := li.MenuItem.Name
		if name == "" {
			name = fmt.Sprintf("Menu Item %d", li.MenuItemID)
		}
		items = append(items, ItemDetail{
			ID:       fmt.Sprintf("%d", li.MenuItemID),
			Price:    li.UnitPrice,
			Quantity: li.Quantity,
			Name:     fmt.Sprintf("%s - %s", name, li.ChildName),
		})
	}

	resp, err := s.midtrans.CreateSnapTransaction(correlationID, order.TotalAmount, customer, items)
	if err != nil {
		return "", fmt.Errorf("gagal membuat pembayaran: %w", err)
	}

	// Token itu sendiri yang dibutuhkan widget; persistensinya advisory.
	s.advisoryUpdate(order.ID, map[string]interface{}{
		"snap_token": resp.Token,
		"updated_at": time.Now(),
	}, "snap_token")

	order.MidtransOrderID = &correlationID
	order.SnapToken = resp.Token
	return resp.Token, nil
}

// ApplyNotification menerapkan satu notifikasi Midtrans yang sudah lolos
// verifikasi signature ke order dengan correlation id tersebut. Aman
// dipanggil berulang dengan notifikasi yang sama (at-least-once delivery):
// penerapan berupa overwrite penuh field status, dan re-delivery dengan
// state yang sudah sama menjadi no-op tanpa side effect tambahan.
func (s *PaymentService) ApplyNotification(midtransOrderID, transactionID, transactionStatus string) error {
	paymentStatus, orderStatus, known := s.midtrans.MapTransactionStatus(transactionStatus)
	if !known {
		// Status asing dari gateway bukan error: biarkan order apa
		// adanya untuk ditinjau manual, jangan salah klasifikasi.
		log.Printf("anomali: transaction_status %q tidak dikenal untuk midtrans order %s, diabaikan", transactionStatus, midtransOrderID)
		return nil
	}

	var order models.Order
	err := s.db.Where("midtrans_order_id = ?", midtransOrderID).First(&order).Error
	if err == gorm.ErrRecordNotFound {
		// Correlation id tidak cocok dengan order mana pun (misalnya
		// attempt lama yang sudah diganti id baru). Catat, jangan retry.
		log.Printf("anomali: notifikasi untuk midtrans order %s tanpa order yang cocok", midtransOrderID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("gagal mencari order untuk midtrans order %s: %w", midtransOrderID, err)
	}

	if order.PaymentStatus == paymentStatus && order.Status == orderStatus && order.MidtransTransactionID == transactionID {
		// Re-delivery notifikasi yang sama
		return nil
	}

	updates := map[string]interface{}{
		"payment_status":          paymentStatus,
		"status":                  orderStatus,
		"midtrans_transaction_id": transactionID,
		"updated_at":              time.Now(),
	}
	if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("gagal mengupdate status order %d: %w", order.ID, err)
	}

	notification := models.Notification{
		Title:   "Payment Status Update",
		Message: fmt.Sprintf("Order %s (%s): pembayaran %s", order.OrderNumber, utils.FormatCurrencyIDR(order.TotalAmount), paymentStatus),
		Type:    "payment",
		Status:  "unread",
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("warning: gagal membuat notifikasi untuk order %d: %v", order.ID, err)
	}

	log.Printf("Order %s diupdate: payment_status=%s, status=%s", midtransOrderID, paymentStatus, orderStatus)
	return nil
}
