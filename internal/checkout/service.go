package checkout

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/magari-ke/storefront/internal/cart"
	"github.com/magari-ke/storefront/pkg/enums"
	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
	"github.com/magari-ke/storefront/pkg/logger"
	"github.com/magari-ke/storefront/pkg/storeapi"
)

const fallbackFailureMessage = "Could not place order."

type orderSubmitter interface {
	SubmitOrder(ctx context.Context, order storeapi.OrderRequest, requestID string) (*storeapi.OrderResponse, error)
}

// Outcome is the tagged result of a submission that reached resolution:
// success, server rejection, server failure, or transport failure.
type Outcome struct {
	Kind    enums.OrderOutcome
	Message string
}

// Service builds order requests from the cart and interprets submission
// responses. The cart is cleared only on a confirmed success; every other
// path preserves it for retry.
type Service struct {
	cart     *cart.Model
	api      orderSubmitter
	log      *logger.Logger
	inFlight atomic.Bool
}

// NewService builds a checkout service bound to the given cart.
func NewService(cartModel *cart.Model, api orderSubmitter, log *logger.Logger) (*Service, error) {
	if cartModel == nil {
		return nil, fmt.Errorf("cart model required")
	}
	if api == nil {
		return nil, fmt.Errorf("store api client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{cart: cartModel, api: api, log: log}, nil
}

// SubmitOrder validates preconditions locally, posts the order, and maps the
// response. Local refusals (empty cart, invalid customer fields, a submission
// already in flight) return an error without touching the network; an Outcome
// is only produced once a submission was actually attempted.
func (s *Service) SubmitOrder(ctx context.Context, customer Customer) (*Outcome, error) {
	if s.cart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "add cars to your cart before checking out")
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeSubmitBusy, "")
	}
	defer s.inFlight.Store(false)

	lines := s.cart.Lines()
	items := make([]storeapi.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, storeapi.OrderItem{
			Brand:    line.Brand,
			Model:    line.Model,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	requestID := uuid.NewString()
	ctx = s.log.WithRequestID(ctx, requestID)
	ctx = s.log.WithFields(ctx, map[string]any{
		"lines": len(items),
		"total": s.cart.Total(),
	})
	s.log.Info(ctx, "submitting order")

	resp, err := s.api.SubmitOrder(ctx, storeapi.OrderRequest{
		Name:    customer.Name,
		Phone:   customer.Phone,
		Country: customer.Country,
		County:  customer.County,
		Payment: customer.Payment,
		Items:   items,
	}, requestID)
	if err != nil {
		s.log.Error(ctx, "order submission failed before a response arrived", err)
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNetwork {
			return &Outcome{
				Kind:    enums.OrderOutcomeNetworkError,
				Message: pkgerrors.MetadataFor(pkgerrors.CodeNetwork).UserMessage,
			}, nil
		}
		return &Outcome{Kind: enums.OrderOutcomeFailure, Message: fallbackFailureMessage}, nil
	}

	return s.resolve(ctx, resp), nil
}

func (s *Service) resolve(ctx context.Context, resp *storeapi.OrderResponse) *Outcome {
	switch resp.StatusCode {
	case http.StatusCreated:
		s.cart.Clear()
		s.log.Info(s.log.WithField(ctx, "outcome", enums.OrderOutcomeSuccess.String()), "order placed")
		message := resp.Message
		if message == "" {
			message = "Order placed successfully."
		}
		return &Outcome{Kind: enums.OrderOutcomeSuccess, Message: message}

	case http.StatusForbidden:
		s.log.Warn(s.log.WithField(ctx, "outcome", enums.OrderOutcomeRejected.String()), "order rejected by business rule")
		message := resp.Message
		if message == "" {
			message = pkgerrors.MetadataFor(pkgerrors.CodeOrderRejected).UserMessage
		}
		return &Outcome{Kind: enums.OrderOutcomeRejected, Message: message}

	default:
		ctx = s.log.WithFields(ctx, map[string]any{
			"outcome": enums.OrderOutcomeFailure.String(),
			"status":  resp.StatusCode,
		})
		s.log.Warn(ctx, "order submission failed")
		message := resp.Message
		if message == "" {
			message = fallbackFailureMessage
		}
		return &Outcome{Kind: enums.OrderOutcomeFailure, Message: message}
	}
}
