package cart

import (
	"errors"
	"fmt"
)

var ErrNegativeQuantity = errors.New("quantity tidak boleh negatif")

// Key adalah identitas gabungan satu baris keranjang. Item menu yang sama
// untuk anak atau tanggal berbeda adalah baris yang berbeda.
type Key struct {
	MenuItemID   uint
	ChildID      uint
	DeliveryDate string // YYYY-MM-DD
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d/%s", k.MenuItemID, k.ChildID, k.DeliveryDate)
}

// Entry adalah kandidat line item sebelum checkout.
type Entry struct {
	MenuItemID   uint
	MenuName     string
	UnitPrice    int64
	Quantity     int
	ChildID      uint
	DeliveryDate string
}

func (e Entry) key() Key {
	return Key{MenuItemID: e.MenuItemID, ChildID: e.ChildID, DeliveryDate: e.DeliveryDate}
}

// Cart menampung pilihan menu selama satu sesi. Murni in-memory, tidak
// pernah menyentuh network maupun database; baru diterjemahkan menjadi
// order line items saat checkout.
type Cart struct {
	entries map[Key]*Entry
	order   []Key // urutan insert, supaya line items dibuat berurutan
}

func New() *Cart {
	return &Cart{entries: make(map[Key]*Entry)}
}

// Add menambah satu qty untuk kombinasi (menu, anak, tanggal). Kombinasi
// yang sudah ada di keranjang hanya bertambah quantity-nya.
func (c *Cart) Add(item Entry) {
	k := item.key()
	if existing, ok := c.entries[k]; ok {
		existing.Quantity++
		return
	}
	e := item
	e.Quantity = 1
	c.entries[k] = &e
	c.order = append(c.order, k)
}

// SetQuantity mengatur quantity satu baris. n == 0 menghapus baris,
// n negatif ditolak.
func (c *Cart) SetQuantity(k Key, n int) error {
	if n < 0 {
		return ErrNegativeQuantity
	}
	e, ok := c.entries[k]
	if !ok {
		return fmt.Errorf("entry %s tidak ada di keranjang", k)
	}
	if n == 0 {
		c.Remove(k)
		return nil
	}
	e.Quantity = n
	return nil
}

func (c *Cart) Remove(k Key) {
	if _, ok := c.entries[k]; !ok {
		return
	}
	delete(c.entries, k)
	for i, key := range c.order {
		if key == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.entries = make(map[Key]*Entry)
	c.order = nil
}

func (c *Cart) Len() int {
	return len(c.entries)
}

// Total dihitung ulang setiap dipanggil, tidak ada field akumulator.
func (c *Cart) Total() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.UnitPrice * int64(e.Quantity)
	}
	return total
}

// Entries mengembalikan salinan isi keranjang dalam urutan insert.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.entries[k])
	}
	return out
}
