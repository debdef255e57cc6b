package cart

import (
	"testing"

	"github.com/magari-ke/storefront/internal/catalog"
)

type fixedFee int

func (f fixedFee) ShipmentFee() int { return int(f) }

func corolla() catalog.Product {
	return catalog.Product{Brand: "Toyota", Model: "Corolla", Price: 2500000}
}

func x1() catalog.Product {
	return catalog.Product{Brand: "BMW", Model: "X1", Price: 4200000}
}

func TestAddItemMergesByKey(t *testing.T) {
	t.Parallel()

	m := NewModel(fixedFee(3000))
	for i := 0; i < 3; i++ {
		// Distinct but logically-equal instances must merge.
		m.AddItem(corolla())
	}
	m.AddItem(x1())

	lines := m.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Brand != "Toyota" || lines[0].Quantity != 3 {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
	if lines[1].Brand != "BMW" || lines[1].Quantity != 1 {
		t.Fatalf("unexpected second line %+v", lines[1])
	}
	if m.ItemCount() != 4 {
		t.Fatalf("expected item count 4, got %d", m.ItemCount())
	}
}

func TestAddItemSnapshotsPriceAtInsertion(t *testing.T) {
	t.Parallel()

	m := NewModel(fixedFee(3000))
	m.AddItem(corolla())

	// A later catalog price change must not retroactively reprice the line,
	// but a repeated add only increments quantity on the existing line.
	repriced := corolla()
	repriced.Price = 2600000
	m.AddItem(repriced)

	lines := m.Lines()
	if len(lines) != 1 || lines[0].Price != 2500000 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestDerivedTotals(t *testing.T) {
	t.Parallel()

	m := NewModel(fixedFee(3000))

	if m.Subtotal() != 0 || m.ShippingFee() != 0 || m.Total() != 0 {
		t.Fatalf("empty cart totals must all be zero: %d %d %d", m.Subtotal(), m.ShippingFee(), m.Total())
	}

	m.AddItem(corolla())
	m.AddItem(corolla())
	m.AddItem(x1())

	wantSubtotal := 2*2500000 + 4200000
	if m.Subtotal() != wantSubtotal {
		t.Fatalf("expected subtotal %d, got %d", wantSubtotal, m.Subtotal())
	}
	if m.ShippingFee() != 3000 {
		t.Fatalf("expected shipping 3000, got %d", m.ShippingFee())
	}
	if m.Total() != wantSubtotal+3000 {
		t.Fatalf("expected total %d, got %d", wantSubtotal+3000, m.Total())
	}
}

func TestShippingFeeZeroIffEmpty(t *testing.T) {
	t.Parallel()

	m := NewModel(fixedFee(3000))
	if m.ShippingFee() != 0 {
		t.Fatalf("empty cart must ship free, got %d", m.ShippingFee())
	}

	m.AddItem(corolla())
	if m.ShippingFee() != 3000 {
		t.Fatalf("non-empty cart must charge the fee, got %d", m.ShippingFee())
	}

	m.Clear()
	if m.ShippingFee() != 0 {
		t.Fatalf("cleared cart must ship free, got %d", m.ShippingFee())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	m := NewModel(fixedFee(3000))
	m.AddItem(corolla())
	m.AddItem(x1())

	m.Clear()
	if !m.IsEmpty() || m.ItemCount() != 0 || len(m.Lines()) != 0 {
		t.Fatal("cart not empty after Clear")
	}
}

func TestLinesReturnsSnapshot(t *testing.T) {
	t.Parallel()

	m := NewModel(fixedFee(3000))
	m.AddItem(corolla())

	lines := m.Lines()
	lines[0].Quantity = 99
	if m.ItemCount() != 1 {
		t.Fatalf("mutating the snapshot must not affect the cart, count=%d", m.ItemCount())
	}
}

func TestFeeFromCatalogLoad(t *testing.T) {
	t.Parallel()

	cat := catalog.NewModel(3000)
	m := NewModel(cat)
	m.AddItem(corolla())

	if m.ShippingFee() != 3000 {
		t.Fatalf("expected fallback fee before first load, got %d", m.ShippingFee())
	}

	if err := cat.Load([]catalog.Product{corolla()}, 4500); err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.ShippingFee() != 4500 {
		t.Fatalf("expected fee from load, got %d", m.ShippingFee())
	}
}
