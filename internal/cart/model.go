package cart

import (
	"github.com/magari-ke/storefront/internal/catalog"
)

// FeeSource supplies the shipment fee applied to non-empty carts. The catalog
// model satisfies it, so the cart always charges the fee from the last load.
type FeeSource interface {
	ShipmentFee() int
}

// Line is one aggregated cart entry for a distinct product key. The price is
// captured at insertion and deliberately kept even if the catalog price later
// diverges.
type Line struct {
	Brand    string
	Model    string
	Price    int
	Quantity int
}

// Model holds the cart lines in insertion order. It lives for the process
// lifetime and is never persisted. All derived values are recomputed on
// demand, never cached.
type Model struct {
	lines []Line
	fee   FeeSource
}

// NewModel builds an empty cart drawing its shipment fee from the source.
func NewModel(fee FeeSource) *Model {
	return &Model{fee: fee}
}

// AddItem merges the product into the cart: an existing line for the same
// (brand, model) key gains quantity, otherwise a new line is appended with
// quantity 1 and the product's current catalog price.
func (m *Model) AddItem(p catalog.Product) {
	for i := range m.lines {
		if m.lines[i].Brand == p.Brand && m.lines[i].Model == p.Model {
			m.lines[i].Quantity++
			return
		}
	}
	m.lines = append(m.lines, Line{
		Brand:    p.Brand,
		Model:    p.Model,
		Price:    p.Price,
		Quantity: 1,
	})
}

// Clear removes all lines. Called only after a confirmed successful order.
func (m *Model) Clear() {
	m.lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (m *Model) IsEmpty() bool {
	return len(m.lines) == 0
}

// ItemCount returns the sum of all line quantities, for the badge count.
func (m *Model) ItemCount() int {
	count := 0
	for _, line := range m.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal returns the sum of price times quantity across all lines.
func (m *Model) Subtotal() int {
	total := 0
	for _, line := range m.lines {
		total += line.Price * line.Quantity
	}
	return total
}

// ShippingFee is zero exactly when the cart is empty, regardless of the
// configured fee.
func (m *Model) ShippingFee() int {
	if m.IsEmpty() || m.fee == nil {
		return 0
	}
	return m.fee.ShipmentFee()
}

// Total returns subtotal plus shipping.
func (m *Model) Total() int {
	return m.Subtotal() + m.ShippingFee()
}

// Lines returns a read-only snapshot in insertion order.
func (m *Model) Lines() []Line {
	snapshot := make([]Line, len(m.lines))
	copy(snapshot, m.lines)
	return snapshot
}
