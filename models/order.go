package models

import "time"

// Status order dan status pembayaran. Kolom status hanya diubah oleh
// webhook handler setelah order dibuat.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Order struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrderNumber   string `gorm:"type:varchar(64);not null;index" json:"order_number"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ChildName     string `gorm:"type:varchar(255);not null" json:"child_name"`
	ChildClass    string `gorm:"type:varchar(50)" json:"child_class"`
	TotalAmount   int64  `gorm:"not null;default:0" json:"total_amount"`
	Status        string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	// MidtransOrderID adalah correlation id ke gateway, nil sampai
	// payment initiation berjalan. Unik setelah terisi.
	MidtransOrderID       *string         `gorm:"type:varchar(64);uniqueIndex" json:"midtrans_order_id"`
	MidtransTransactionID string          `gorm:"type:varchar(64)" json:"midtrans_transaction_id"`
	SnapToken             string          `gorm:"type:varchar(255)" json:"snap_token,omitempty"`
	Notes                 *string         `gorm:"type:text" json:"notes"`
	CreatedAt             time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updated_at"`
	LineItems             []OrderLineItem `gorm:"foreignKey:OrderID" json:"line_items"`
}

// GetCustomerName mengembalikan nama untuk customer_details Midtrans,
// dengan fallback generik jika profil kosong.
func (o *Order) GetCustomerName() string {
	if o.User.FullName != "" {
		return o.User.FullName
	}
	return "Customer"
}

func (o *Order) GetCustomerEmail() string {
	if o.User.Email != "" {
		return o.User.Email
	}
	return "parent@example.com"
}

func (o *Order) GetCustomerPhone() string {
	if o.User.Phone != "" {
		return o.User.Phone
	}
	return "08123456789"
}
