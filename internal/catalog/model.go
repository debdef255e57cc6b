package catalog

import (
	"fmt"
	"sort"

	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
	"go.uber.org/multierr"
)

// Product is one catalog entry. Entries are immutable once loaded; the
// (Brand, Model) pair is the identity key and the upstream API guarantees its
// uniqueness, so the client does not re-check it.
type Product struct {
	Brand       string
	Model       string
	Price       int
	Description string
	ImageURL    string
}

// Key is the catalog identity of a product.
type Key struct {
	Brand string
	Model string
}

// Key returns the product's catalog identity.
func (p Product) Key() Key {
	return Key{Brand: p.Brand, Model: p.Model}
}

// Model holds the fetched product list and the shipment fee. It is populated
// once at startup and mutated only through Load; callers on the rendering
// side only ever see snapshots.
type Model struct {
	products    []Product
	index       map[Key]int
	shipmentFee int
}

// NewModel builds an empty catalog carrying the fallback shipment fee used
// before the first successful fetch.
func NewModel(fallbackShipmentFee int) *Model {
	return &Model{
		index:       map[Key]int{},
		shipmentFee: fallbackShipmentFee,
	}
}

// Load replaces the catalog and shipment fee atomically. A malformed payload
// rejects the whole load, reporting every violation, and leaves the previous
// state untouched.
func (m *Model) Load(products []Product, shipmentFee int) error {
	var errs []error
	if shipmentFee < 0 {
		errs = append(errs, fmt.Errorf("shipment fee must be non-negative, got %d", shipmentFee))
	}
	for i, p := range products {
		if p.Brand == "" {
			errs = append(errs, fmt.Errorf("product %d: brand is required", i))
		}
		if p.Model == "" {
			errs = append(errs, fmt.Errorf("product %d: model is required", i))
		}
		if p.Price < 0 {
			errs = append(errs, fmt.Errorf("product %d (%s %s): price must be non-negative, got %d", i, p.Brand, p.Model, p.Price))
		}
	}
	if combined := multierr.Combine(errs...); combined != nil {
		return pkgerrors.Wrap(pkgerrors.CodeCatalogLoad, combined, "invalid catalog payload")
	}

	installed := make([]Product, len(products))
	copy(installed, products)
	index := make(map[Key]int, len(installed))
	for i, p := range installed {
		index[p.Key()] = i
	}

	m.products = installed
	m.index = index
	m.shipmentFee = shipmentFee
	return nil
}

// Find returns the product for an exact (brand, model) key.
func (m *Model) Find(brand, model string) (Product, bool) {
	i, ok := m.index[Key{Brand: brand, Model: model}]
	if !ok {
		return Product{}, false
	}
	return m.products[i], true
}

// ListBrands returns the distinct brand values in ascending order. The
// "all brands" sentinel belongs to the UI layer, not this set.
func (m *Model) ListBrands() []string {
	seen := map[string]struct{}{}
	brands := make([]string, 0, len(m.products))
	for _, p := range m.products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

// Products returns a snapshot of the catalog in stored order.
func (m *Model) Products() []Product {
	snapshot := make([]Product, len(m.products))
	copy(snapshot, m.products)
	return snapshot
}

// ShipmentFee returns the fee from the last load, or the fallback before one.
func (m *Model) ShipmentFee() int {
	return m.shipmentFee
}

// Len returns the number of catalog entries.
func (m *Model) Len() int {
	return len(m.products)
}
