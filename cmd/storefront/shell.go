package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/magari-ke/storefront/internal/admin"
	"github.com/magari-ke/storefront/internal/cart"
	"github.com/magari-ke/storefront/internal/catalog"
	"github.com/magari-ke/storefront/internal/checkout"
	"github.com/magari-ke/storefront/pkg/enums"
	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
	"github.com/magari-ke/storefront/pkg/logger"
)

// shell is the interactive storefront surface. It owns no business state: it
// reads model snapshots, renders them, and forwards user actions.
type shell struct {
	in       *bufio.Scanner
	out      io.Writer
	render   *renderer
	log      *logger.Logger
	catalog  *catalog.Model
	cart     *cart.Model
	checkout *checkout.Service
	admin    *admin.Service

	// current projection inputs; both apply simultaneously
	brandFilter string
	searchTerm  string

	// set when the startup fetch failed; shown in place of the product list
	catalogErr string
}

func newShell(in io.Reader, out io.Writer, render *renderer, log *logger.Logger,
	catalogModel *catalog.Model, cartModel *cart.Model,
	checkoutSvc *checkout.Service, adminSvc *admin.Service) *shell {
	return &shell{
		in:       bufio.NewScanner(in),
		out:      out,
		render:   render,
		log:      log,
		catalog:  catalogModel,
		cart:     cartModel,
		checkout: checkoutSvc,
		admin:    adminSvc,
	}
}

func (s *shell) run(ctx context.Context) {
	s.log.Debug(ctx, "shell started")
	fmt.Fprintln(s.out, "Karibu! Type 'help' for commands.")
	s.showCatalog()

	for {
		fmt.Fprintf(s.out, "\n[cart: %d] > ", s.cart.ItemCount())
		if !s.in.Scan() {
			return
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "help":
			s.showHelp()
		case "list":
			s.showCatalog()
		case "brands":
			s.render.renderBrands(s.out, s.catalog.ListBrands())
		case "brand":
			s.brandFilter = arg
			s.showCatalog()
		case "search":
			s.searchTerm = arg
			s.showCatalog()
		case "add":
			s.addToCart(arg)
		case "cart":
			s.render.renderCart(s.out, s.cart)
		case "checkout":
			s.runCheckout(ctx)
		case "admin":
			s.runAdminLogin(ctx)
		case "quit", "exit":
			fmt.Fprintln(s.out, "Kwaheri!")
			return
		default:
			fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func (s *shell) showHelp() {
	fmt.Fprint(s.out, `Commands:
  list                 show the catalog with current filters
  brands               list available brands
  brand [name]         filter by exact brand (no name clears the filter)
  search [term]        search brand/model (no term clears the search)
  add <brand> <model>  add a car to the cart
  cart                 show the cart and totals
  checkout             place the order
  admin                log in to the admin dashboard
  quit                 leave the store
`)
}

func (s *shell) showCatalog() {
	if s.catalogErr != "" {
		fmt.Fprintln(s.out, s.catalogErr)
		return
	}
	s.render.renderCatalog(s.out, catalog.Project(s.catalog, s.brandFilter, s.searchTerm))
}

func (s *shell) addToCart(arg string) {
	parts := strings.SplitN(arg, " ", 2)
	if len(parts) < 2 {
		fmt.Fprintln(s.out, "Usage: add <brand> <model>")
		return
	}
	brand, model := parts[0], strings.TrimSpace(parts[1])

	product, ok := s.catalog.Find(brand, model)
	if !ok {
		fmt.Fprintf(s.out, "No %s %s in the catalog.\n", brand, model)
		return
	}

	s.cart.AddItem(product)
	fmt.Fprintf(s.out, "%s %s added. Cart has %d item(s).\n", product.Brand, product.Model, s.cart.ItemCount())
}

func (s *shell) runCheckout(ctx context.Context) {
	if s.cart.IsEmpty() {
		fmt.Fprintln(s.out, "Please add items to your cart first.")
		return
	}

	s.render.renderCart(s.out, s.cart)
	customer := checkout.Customer{
		Name:    s.prompt("Name"),
		Phone:   s.prompt("Phone"),
		Country: s.prompt("Country"),
		County:  s.prompt("County"),
		Payment: s.promptPayment(),
	}

	outcome, err := s.checkout.SubmitOrder(ctx, customer)
	if err != nil {
		s.printError(err)
		return
	}

	switch outcome.Kind {
	case enums.OrderOutcomeSuccess:
		fmt.Fprintf(s.out, "SUCCESS! %s\n", outcome.Message)
	case enums.OrderOutcomeRejected:
		fmt.Fprintf(s.out, "ORDER FAILED: %s\n", outcome.Message)
	case enums.OrderOutcomeNetworkError:
		fmt.Fprintf(s.out, "NETWORK ERROR: %s\n", outcome.Message)
	default:
		fmt.Fprintf(s.out, "ERROR: %s\n", outcome.Message)
	}
}

func (s *shell) runAdminLogin(ctx context.Context) {
	password := s.prompt("Admin password")

	outcome, err := s.admin.Login(ctx, password)
	if err != nil {
		s.printError(err)
		return
	}

	switch outcome.Kind {
	case enums.LoginOutcomeAuthenticated:
		fmt.Fprintf(s.out, "Login successful! Open the dashboard at %s\n", outcome.RedirectTarget)
	case enums.LoginOutcomeNetworkError:
		fmt.Fprintf(s.out, "NETWORK ERROR: %s\n", outcome.Message)
	default:
		fmt.Fprintln(s.out, outcome.Message)
	}
}

func (s *shell) prompt(label string) string {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

// promptPayment canonicalizes recognizable input ("Card" -> "card") and
// passes anything else through for the checkout validator to reject.
func (s *shell) promptPayment() string {
	raw := s.prompt("Payment (mpesa/card/bank)")
	if method, err := enums.ParsePaymentMethod(strings.ToLower(raw)); err == nil {
		return method.String()
	}
	return raw
}

func (s *shell) printError(err error) {
	fmt.Fprintln(s.out, pkgerrors.UserMessage(err))
	if typed := pkgerrors.As(err); typed != nil {
		if details, ok := typed.Details().(map[string]string); ok {
			for field, problem := range details {
				fmt.Fprintf(s.out, "  %s %s\n", field, problem)
			}
		}
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return cmd, ""
	}
	return cmd, strings.TrimSpace(parts[1])
}
