package cart

import (
	"testing"
)

func entry(menuID, childID uint, date string, price int64) Entry {
	return Entry{
		MenuItemID:   menuID,
		MenuName:     "Nasi Goreng",
		UnitPrice:    price,
		ChildID:      childID,
		DeliveryDate: date,
	}
}

func TestAddIncrementsSameCompositeKey(t *testing.T) {
	c := New()
	c.Add(entry(1, 10, "2026-09-01", 15000))
	c.Add(entry(1, 10, "2026-09-01", 15000))

	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
	entries := c.Entries()
	if entries[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", entries[0].Quantity)
	}
}

func TestAddDistinctChildrenAndDates(t *testing.T) {
	// Item menu sama untuk anak berbeda atau tanggal berbeda tidak
	// boleh digabung
	tests := []struct {
		name   string
		second Entry
	}{
		{"different child", entry(1, 11, "2026-09-01", 15000)},
		{"different date", entry(1, 10, "2026-09-02", 15000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add(entry(1, 10, "2026-09-01", 15000))
			c.Add(tt.second)
			if c.Len() != 2 {
				t.Errorf("expected 2 distinct entries, got %d", c.Len())
			}
		})
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(entry(1, 10, "2026-09-01", 15000))
	key := Key{MenuItemID: 1, ChildID: 10, DeliveryDate: "2026-09-01"}

	if err := c.SetQuantity(key, 5); err != nil {
		t.Fatalf("SetQuantity(5): %v", err)
	}
	if got := c.Entries()[0].Quantity; got != 5 {
		t.Errorf("expected quantity 5, got %d", got)
	}

	if err := c.SetQuantity(key, -1); err != ErrNegativeQuantity {
		t.Errorf("expected ErrNegativeQuantity, got %v", err)
	}

	// n == 0 menghapus entry
	if err := c.SetQuantity(key, 0); err != nil {
		t.Fatalf("SetQuantity(0): %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cart after SetQuantity(0), got %d entries", c.Len())
	}

	if err := c.SetQuantity(key, 3); err == nil {
		t.Error("expected error for missing entry")
	}
}

func TestTotalRecomputedOnRead(t *testing.T) {
	c := New()
	c.Add(entry(1, 10, "2026-09-01", 15000))
	c.Add(entry(1, 10, "2026-09-01", 15000))
	c.Add(entry(2, 10, "2026-09-01", 12000))

	if got := c.Total(); got != 42000 {
		t.Errorf("expected total 42000, got %d", got)
	}

	key := Key{MenuItemID: 2, ChildID: 10, DeliveryDate: "2026-09-01"}
	c.Remove(key)
	if got := c.Total(); got != 30000 {
		t.Errorf("expected total 30000 after remove, got %d", got)
	}

	c.Clear()
	if got := c.Total(); got != 0 {
		t.Errorf("expected total 0 after clear, got %d", got)
	}
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	c := New()
	c.Add(entry(3, 10, "2026-09-01", 10000))
	c.Add(entry(1, 10, "2026-09-01", 15000))
	c.Add(entry(2, 10, "2026-09-01", 12000))

	entries := c.Entries()
	want := []uint{3, 1, 2}
	for i, e := range entries {
		if e.MenuItemID != want[i] {
			t.Fatalf("position %d: expected menu item %d, got %d", i, want[i], e.MenuItemID)
		}
	}
}
