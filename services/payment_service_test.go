package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/models"
)

func seedPendingOrder(t *testing.T, db *gorm.DB, user models.User) *models.Order {
	t.Helper()
	childID := uint(1)
	order := models.Order{
		OrderNumber:   "ORDER-1700000000000-abc123def",
		UserID:        user.ID,
		ChildName:     "Budi",
		ChildClass:    "3A",
		TotalAmount:   30000,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	item := models.OrderLineItem{
		OrderID:      order.ID,
		ChildID:      &childID,
		ChildName:    "Budi",
		ChildClass:   "3A",
		MenuItemID:   1,
		Quantity:     2,
		UnitPrice:    15000,
		TotalPrice:   30000,
		DeliveryDate: "2030-01-06",
		OrderDate:    "2030-01-01",
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatal(err)
	}
	order.LineItems = []models.OrderLineItem{item}
	order.User = user
	return &order
}

func fakeGateway(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestInitiatePaymentPersistsCorrelationIDAndToken(t *testing.T) {
	db := setupOrderTestDB(t)
	user, _ := seedParentAndChild(t, db)
	order := seedPendingOrder(t, db, user)

	server := fakeGateway(t, http.StatusCreated, `{"token": "snap-abc"}`)
	ms := NewMidtransService(&MidtransConfig{ServerKey: "sk", ClientKey: "ck", BaseURL: server.URL})

	svc := NewPaymentService(db, ms)
	svc.GenerateCorrelationID = sequentialIDs("MID")

	token, err := svc.InitiatePayment(order)
	assert.NoError(t, err)
	assert.Equal(t, "snap-abc", token)

	var stored models.Order
	assert.NoError(t, db.First(&stored, order.ID).Error)
	assert.NotNil(t, stored.MidtransOrderID)
	assert.Equal(t, "MID-1", *stored.MidtransOrderID)
	assert.Equal(t, "snap-abc", stored.SnapToken)
	// Inisiasi tidak pernah menandai paid
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestInitiatePaymentGatewayErrorLeavesOrderRetryable(t *testing.T) {
	db := setupOrderTestDB(t)
	user, _ := seedParentAndChild(t, db)
	order := seedPendingOrder(t, db, user)

	server := fakeGateway(t, http.StatusInternalServerError, `{"error_messages": ["sorry"]}`)
	ms := NewMidtransService(&MidtransConfig{ServerKey: "sk", BaseURL: server.URL})

	svc := NewPaymentService(db, ms)
	svc.GenerateCorrelationID = sequentialIDs("MID")

	_, err := svc.InitiatePayment(order)
	assert.Error(t, err)

	var stored models.Order
	assert.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	// Correlation id attempt pertama tersimpan, tidak lebih dari itu
	assert.Equal(t, "MID-1", *stored.MidtransOrderID)
	assert.Empty(t, stored.SnapToken)

	// Retry tanpa membuat order baru: correlation id segar dicetak
	server2 := fakeGateway(t, http.StatusCreated, `{"token": "snap-retry"}`)
	ms2 := NewMidtransService(&MidtransConfig{ServerKey: "sk", BaseURL: server2.URL})
	svc2 := NewPaymentService(db, ms2)
	svc2.GenerateCorrelationID = sequentialIDs("RETRY")

	token, err := svc2.InitiatePayment(order)
	assert.NoError(t, err)
	assert.Equal(t, "snap-retry", token)

	assert.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, "RETRY-1", *stored.MidtransOrderID)
}

func applyTestSetup(t *testing.T, db *gorm.DB, correlationID string) (*PaymentService, *models.Order) {
	t.Helper()
	user, _ := seedParentAndChild(t, db)
	order := seedPendingOrder(t, db, user)
	assert.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("midtrans_order_id", correlationID).Error)

	ms := NewMidtransService(&MidtransConfig{ServerKey: "sk"})
	return NewPaymentService(db, ms), order
}

func TestApplyNotificationStatusMapping(t *testing.T) {
	tests := []struct {
		gatewayStatus string
		wantPayment   string
		wantOrder     string
	}{
		{"settlement", models.PaymentStatusPaid, models.OrderStatusConfirmed},
		{"capture", models.PaymentStatusPaid, models.OrderStatusConfirmed},
		{"pending", models.PaymentStatusPending, models.OrderStatusPending},
		{"cancel", models.PaymentStatusFailed, models.OrderStatusCancelled},
		{"expire", models.PaymentStatusFailed, models.OrderStatusCancelled},
		{"failure", models.PaymentStatusFailed, models.OrderStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.gatewayStatus, func(t *testing.T) {
			db := setupOrderTestDB(t)
			svc, order := applyTestSetup(t, db, "MID-1")

			err := svc.ApplyNotification("MID-1", "tx-77", tt.gatewayStatus)
			assert.NoError(t, err)

			var stored models.Order
			assert.NoError(t, db.First(&stored, order.ID).Error)
			assert.Equal(t, tt.wantPayment, stored.PaymentStatus)
			assert.Equal(t, tt.wantOrder, stored.Status)
			assert.Equal(t, "tx-77", stored.MidtransTransactionID)
		})
	}
}

func TestApplyNotificationIdempotent(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, order := applyTestSetup(t, db, "MID-1")

	assert.NoError(t, svc.ApplyNotification("MID-1", "tx-77", "settlement"))

	var first models.Order
	assert.NoError(t, db.First(&first, order.ID).Error)

	// Redelivery notifikasi yang sama persis
	time.Sleep(10 * time.Millisecond)
	assert.NoError(t, svc.ApplyNotification("MID-1", "tx-77", "settlement"))

	var second models.Order
	assert.NoError(t, db.First(&second, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, second.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, second.Status)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)

	// Audit notifikasi tidak menumpuk untuk redelivery
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApplyNotificationUnknownStatusIsNoOp(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, order := applyTestSetup(t, db, "MID-1")

	err := svc.ApplyNotification("MID-1", "tx-88", "refund")
	assert.NoError(t, err)

	// Lebih aman order tertahan pending untuk ditinjau manual daripada
	// salah klasifikasi
	var stored models.Order
	assert.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Empty(t, stored.MidtransTransactionID)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestApplyNotificationUnmatchedCorrelationID(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, order := applyTestSetup(t, db, "MID-1")

	// Misalnya notifikasi attempt lama yang id-nya sudah diganti
	err := svc.ApplyNotification("MID-STALE", "tx-99", "settlement")
	assert.NoError(t, err)

	var stored models.Order
	assert.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
}
