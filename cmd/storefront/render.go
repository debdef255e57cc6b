package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/magari-ke/storefront/internal/cart"
	"github.com/magari-ke/storefront/internal/catalog"
)

// renderer prints read-only snapshots of the models. It never mutates state,
// so any stale frame is corrected by the next render.
type renderer struct {
	printer       *message.Printer
	currencyLabel string
}

func newRenderer(locale, currencyLabel string) *renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &renderer{
		printer:       message.NewPrinter(tag),
		currencyLabel: currencyLabel,
	}
}

// money formats an amount with locale-aware digit grouping, e.g. "KSh 2,500,000".
func (r *renderer) money(amount int) string {
	return fmt.Sprintf("%s %s", r.currencyLabel, r.printer.Sprintf("%d", amount))
}

func (r *renderer) renderCatalog(w io.Writer, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No cars match your filters.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "%s %s — %s\n", p.Brand, p.Model, r.money(p.Price))
		if p.Description != "" {
			fmt.Fprintf(w, "    %s\n", p.Description)
		}
	}
}

func (r *renderer) renderBrands(w io.Writer, brands []string) {
	fmt.Fprintf(w, "All Brands, %s\n", strings.Join(brands, ", "))
}

func (r *renderer) renderCart(w io.Writer, c *cart.Model) {
	lines := c.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(w, "%s %s (%s x %d) = %s\n",
			line.Brand, line.Model, r.money(line.Price), line.Quantity, r.money(line.Price*line.Quantity))
	}
	fmt.Fprintf(w, "Subtotal: %s\n", r.money(c.Subtotal()))
	fmt.Fprintf(w, "Shipping: %s\n", r.money(c.ShippingFee()))
	fmt.Fprintf(w, "Total:    %s\n", r.money(c.Total()))
}
