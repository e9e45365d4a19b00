package services

import (
	"errors"
	"sync"

	"github.com/yeremiapane/catering-app/cart"
	"github.com/yeremiapane/catering-app/models"
)

var ErrCheckoutInProgress = errors.New("checkout sedang berjalan, tunggu sampai selesai")

// WidgetOutcome adalah hasil terminal dari satu pembukaan payment widget.
// Tepat satu outcome per pemanggilan widget.
type WidgetOutcome int

const (
	WidgetSuccess WidgetOutcome = iota
	WidgetPending
	WidgetError
	WidgetClosed
)

// CheckoutResult adalah hasil checkout yang sukses sampai token diperoleh.
type CheckoutResult struct {
	Order     *models.Order `json:"order"`
	SnapToken string        `json:"snap_token"`
}

// CheckoutSession memegang state checkout satu sesi: keranjang dan guard
// in-progress. State ini milik sesi, bukan singleton paket, supaya banyak
// sesi bisa berjalan berdampingan dan mudah dites.
type CheckoutSession struct {
	Cart *cart.Cart

	orders   *OrderService
	payments *PaymentService

	mu         sync.Mutex
	inProgress bool
}

func NewCheckoutSession(orders *OrderService, payments *PaymentService) *CheckoutSession {
	return &CheckoutSession{
		Cart:     cart.New(),
		orders:   orders,
		payments: payments,
	}
}

// Checkout menjalankan pembuatan order lalu inisiasi pembayaran. Pemanggilan
// ulang selagi satu checkout masih berjalan ditolak; satu sesi memegang
// tepat satu keranjang jadi tidak perlu lock terdistribusi.
//
// Keranjang TIDAK dibersihkan di sini, berhasil maupun gagal; itu urusan
// ResolveWidgetOutcome supaya kegagalan tidak menghilangkan pilihan user.
func (cs *CheckoutSession) Checkout(userID uint, child *models.Child, notes string) (*CheckoutResult, error) {
	cs.mu.Lock()
	if cs.inProgress {
		cs.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	cs.inProgress = true
	cs.mu.Unlock()

	defer func() {
		cs.mu.Lock()
		cs.inProgress = false
		cs.mu.Unlock()
	}()

	order, err := cs.orders.CreateOrder(userID, cs.Cart.Entries(), child, notes)
	if err != nil {
		return nil, err
	}

	// Reload dengan preload supaya item details dan profil user ikut
	// terkirim ke gateway; kalau gagal pakai hasil create apa adanya.
	if loaded, loadErr := cs.orders.GetOrderForUser(order.ID, userID); loadErr == nil {
		order = loaded
	}

	token, err := cs.payments.InitiatePayment(order)
	if err != nil {
		// Order sudah ada dan tetap pending; user bisa mengulang
		// inisiasi pembayaran tanpa membuat order baru.
		return &CheckoutResult{Order: order}, err
	}

	return &CheckoutResult{Order: order, SnapToken: token}, nil
}

// ResolveWidgetOutcome menerapkan outcome widget ke state lokal sesi.
// Murni advisory untuk UI: tidak pernah menyentuh baris order, karena
// satu-satunya penulis status order pasca-pembuatan adalah webhook.
func (cs *CheckoutSession) ResolveWidgetOutcome(outcome WidgetOutcome) {
	switch outcome {
	case WidgetSuccess, WidgetPending:
		cs.Cart.Clear()
	case WidgetError, WidgetClosed:
		// Keranjang dipertahankan supaya user bisa coba lagi; order
		// tetap pending sampai user retry atau operator turun tangan.
	}
}
