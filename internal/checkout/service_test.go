package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/magari-ke/storefront/internal/cart"
	"github.com/magari-ke/storefront/internal/catalog"
	"github.com/magari-ke/storefront/pkg/enums"
	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
	"github.com/magari-ke/storefront/pkg/logger"
	"github.com/magari-ke/storefront/pkg/storeapi"
)

type stubSubmitter struct {
	resp    *storeapi.OrderResponse
	err     error
	calls   int
	lastReq storeapi.OrderRequest
	lastID  string

	// when set, started receives once per call and SubmitOrder then blocks
	// until block closes
	started chan struct{}
	block   chan struct{}
}

func (s *stubSubmitter) SubmitOrder(ctx context.Context, order storeapi.OrderRequest, requestID string) (*storeapi.OrderResponse, error) {
	s.calls++
	s.lastReq = order
	s.lastID = requestID
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type fixedFee int

func (f fixedFee) ShipmentFee() int { return int(f) }

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: nopWriter{}})
}

func validCustomer() Customer {
	return Customer{
		Name:    "Wanjiku",
		Phone:   "0700000000",
		Country: "Kenya",
		County:  "Nairobi",
		Payment: "mpesa",
	}
}

func filledCart(t *testing.T) *cart.Model {
	t.Helper()
	m := cart.NewModel(fixedFee(3000))
	m.AddItem(catalog.Product{Brand: "Toyota", Model: "Corolla", Price: 2500000})
	m.AddItem(catalog.Product{Brand: "Toyota", Model: "Corolla", Price: 2500000})
	m.AddItem(catalog.Product{Brand: "BMW", Model: "X1", Price: 4200000})
	return m
}

func newService(t *testing.T, cartModel *cart.Model, api *stubSubmitter) *Service {
	t.Helper()
	svc, err := NewService(cartModel, api, discardLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitOrderEmptyCartNeverHitsNetwork(t *testing.T) {
	api := &stubSubmitter{}
	svc := newService(t, cart.NewModel(fixedFee(3000)), api)

	outcome, err := svc.SubmitOrder(context.Background(), validCustomer())
	if outcome != nil {
		t.Fatalf("expected no outcome, got %+v", outcome)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("empty cart must not issue a network call, got %d", api.calls)
	}
}

func TestSubmitOrderValidatesCustomerBeforeNetwork(t *testing.T) {
	api := &stubSubmitter{}
	cartModel := filledCart(t)
	svc := newService(t, cartModel, api)

	customer := validCustomer()
	customer.Name = ""
	customer.Payment = "goats"

	_, err := svc.SubmitOrder(context.Background(), customer)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected per-field details, got %T", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name detail %q", details["name"])
	}
	if details["payment"] != "must be one of mpesa, card, bank" {
		t.Fatalf("unexpected payment detail %q", details["payment"])
	}
	if api.calls != 0 {
		t.Fatalf("validation failure must not issue a network call, got %d", api.calls)
	}
	if cartModel.ItemCount() != 3 {
		t.Fatalf("cart must be preserved, count=%d", cartModel.ItemCount())
	}
}

func TestSubmitOrderSuccessClearsCart(t *testing.T) {
	api := &stubSubmitter{resp: &storeapi.OrderResponse{StatusCode: http.StatusCreated, Message: "Order placed"}}
	cartModel := filledCart(t)
	svc := newService(t, cartModel, api)

	outcome, err := svc.SubmitOrder(context.Background(), validCustomer())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != enums.OrderOutcomeSuccess || outcome.Message != "Order placed" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if !cartModel.IsEmpty() {
		t.Fatal("cart must be cleared on confirmed success")
	}

	if api.lastID == "" {
		t.Fatal("expected a request id on submission")
	}
	if len(api.lastReq.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(api.lastReq.Items))
	}
	if api.lastReq.Items[0].Quantity != 2 || api.lastReq.Items[0].Price != 2500000 {
		t.Fatalf("line not carried verbatim: %+v", api.lastReq.Items[0])
	}
	if api.lastReq.Name != "Wanjiku" || api.lastReq.Payment != "mpesa" {
		t.Fatalf("customer fields not carried: %+v", api.lastReq)
	}
}

func TestSubmitOrderRejectionPreservesCart(t *testing.T) {
	api := &stubSubmitter{resp: &storeapi.OrderResponse{StatusCode: http.StatusForbidden, Message: "Closed on Sundays"}}
	cartModel := filledCart(t)
	before := cartModel.Lines()
	svc := newService(t, cartModel, api)

	outcome, err := svc.SubmitOrder(context.Background(), validCustomer())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != enums.OrderOutcomeRejected || outcome.Message != "Closed on Sundays" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	after := cartModel.Lines()
	if len(after) != len(before) {
		t.Fatalf("cart changed: %d vs %d lines", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("line %d changed: %+v vs %+v", i, after[i], before[i])
		}
	}
}

func TestSubmitOrderFailureFallsBackToGenericMessage(t *testing.T) {
	api := &stubSubmitter{resp: &storeapi.OrderResponse{StatusCode: http.StatusInternalServerError}}
	cartModel := filledCart(t)
	svc := newService(t, cartModel, api)

	outcome, err := svc.SubmitOrder(context.Background(), validCustomer())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != enums.OrderOutcomeFailure || outcome.Message != "Could not place order." {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if cartModel.IsEmpty() {
		t.Fatal("cart must be preserved on failure")
	}
}

func TestSubmitOrderFailureKeepsServerMessage(t *testing.T) {
	api := &stubSubmitter{resp: &storeapi.OrderResponse{StatusCode: http.StatusBadRequest, Message: "Invalid data received."}}
	svc := newService(t, filledCart(t), api)

	outcome, err := svc.SubmitOrder(context.Background(), validCustomer())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != enums.OrderOutcomeFailure || outcome.Message != "Invalid data received." {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestSubmitOrderNetworkErrorPreservesCart(t *testing.T) {
	api := &stubSubmitter{err: pkgerrors.Wrap(pkgerrors.CodeNetwork, errors.New("connection refused"), "submit order")}
	cartModel := filledCart(t)
	svc := newService(t, cartModel, api)

	outcome, err := svc.SubmitOrder(context.Background(), validCustomer())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind != enums.OrderOutcomeNetworkError {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.Message != "a network error occurred, check that the server is reachable" {
		t.Fatalf("message must tell the user to check the server, got %q", outcome.Message)
	}
	if cartModel.IsEmpty() {
		t.Fatal("cart must be preserved on network error")
	}
}

func TestSubmitOrderRefusesConcurrentSubmission(t *testing.T) {
	api := &stubSubmitter{
		resp:    &storeapi.OrderResponse{StatusCode: http.StatusCreated, Message: "Order placed"},
		started: make(chan struct{}, 1),
		block:   make(chan struct{}),
	}
	cartModel := filledCart(t)
	svc := newService(t, cartModel, api)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		if _, err := svc.SubmitOrder(context.Background(), validCustomer()); err != nil {
			t.Errorf("first submission failed: %v", err)
		}
	}()

	// Wait for the first submission to reach the transport.
	<-api.started

	_, err := svc.SubmitOrder(context.Background(), validCustomer())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSubmitBusy {
		t.Fatalf("expected in-flight refusal, got %v", err)
	}

	close(api.block)
	<-firstDone

	if api.calls != 1 {
		t.Fatalf("second submission must not reach the network, calls=%d", api.calls)
	}
	if !cartModel.IsEmpty() {
		t.Fatal("first submission's success must clear the cart")
	}
}
