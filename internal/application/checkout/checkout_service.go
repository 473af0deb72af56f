// Package checkout sequences the shipping, payment and confirmation steps
// and places the order in a single transaction.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// CheckoutService drives a user through checkout
type CheckoutService struct {
	carts          cart.Store
	sessions       checkout.SessionStore
	addressRepo    customer.AddressRepository
	uow            trade.UnitOfWork
	authorizer     Authorizer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts cart.Store,
	sessions checkout.SessionStore,
	addressRepo customer.AddressRepository,
	uow trade.UnitOfWork,
	authorizer Authorizer,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		carts:       carts,
		sessions:    sessions,
		addressRepo: addressRepo,
		uow:         uow,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher used for OrderPlaced events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Begin starts (or restarts) checkout at the shipping step.
// Returns shared.ErrCartEmpty when there is nothing to buy.
func (s *CheckoutService) Begin(ctx context.Context, userID uuid.UUID) (*SessionResponse, error) {
	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	prefill := valueobject.ShippingAddress{}
	saved, err := s.addressRepo.FindByUser(ctx, userID)
	switch {
	case err == nil:
		prefill = saved.Shipping
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	session := checkout.NewSession(userID, prefill)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session, c), nil
}

// Status returns the current session
func (s *CheckoutService) Status(ctx context.Context, userID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.IsComplete() {
		return toSessionResponse(session, nil), nil
	}
	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session, c), nil
}

// SubmitShipping records the shipping address and moves to payment
func (s *CheckoutService) SubmitShipping(ctx context.Context, userID uuid.UUID, req ShippingRequest) (*SessionResponse, error) {
	session, c, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr, err := valueobject.NewShippingAddress(req.Street, req.City, req.State, req.PostalCode, req.Country)
	if err != nil {
		return nil, err
	}
	if err := session.SubmitShipping(addr); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session, c), nil
}

// Back returns from payment to shipping
func (s *CheckoutService) Back(ctx context.Context, userID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := session.Back(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.Status(ctx, userID)
}

// SubmitPayment authorizes the payment and places the order.
// The address, order and order items are written in one transaction; the cart is
// cleared only after it commits.
func (s *CheckoutService) SubmitPayment(ctx context.Context, userID uuid.UUID, req PaymentRequest) (*ConfirmationResponse, error) {
	session, c, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := session.CanPay(); err != nil {
		return nil, err
	}

	if err := s.authorizer.Authorize(ctx, req); err != nil {
		s.logger.Info("Payment not authorized",
			zap.String("user_id", userID.String()),
			zap.String("method", string(req.Method)),
			zap.Error(err),
		)
		return nil, err
	}

	lines := make([]trade.LineInput, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = trade.LineInput{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
	}

	var order *trade.Order
	err = s.uow.Do(ctx, func(repos trade.TxRepositories) error {
		user, err := repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		address, err := saveShippingAddress(ctx, repos.Addresses, user.ID, session.Shipping)
		if err != nil {
			return err
		}

		order, err = trade.NewOrder(user.ID, &address.ID, req.Method, lines)
		if err != nil {
			return err
		}
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", order.TotalAmount.String()),
	)

	if err := s.carts.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after order", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
	summary := summaryOf(order)
	if err := session.Confirm(order.ID, checkout.PlacedOrder(summary)); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Warn("Failed to save confirmed checkout session", zap.Error(err))
	}
	s.publish(ctx, order)

	return &ConfirmationResponse{
		OrderID: order.ID,
		Status:  order.Status.String(),
		Step:    session.Step,
		Summary: summary,
	}, nil
}

// activeSession loads an unfinished session and a non-empty cart
func (s *CheckoutService) activeSession(ctx context.Context, userID uuid.UUID) (*checkout.Session, *cart.Cart, error) {
	session, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsComplete() {
		return nil, nil, shared.NewDomainError("INVALID_STATE", "Checkout is already complete")
	}
	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if c.IsEmpty() {
		return nil, nil, shared.ErrCartEmpty
	}
	return session, c, nil
}

// saveShippingAddress updates the user's saved address, or inserts it as the default
func saveShippingAddress(ctx context.Context, repo customer.AddressRepository, userID uuid.UUID, shipping valueobject.ShippingAddress) (*customer.Address, error) {
	address, err := repo.FindByUser(ctx, userID)
	switch {
	case err == nil:
		if address.Shipping.Equals(shipping) {
			return address, nil
		}
		if err := address.Replace(shipping); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		address, err = customer.NewAddress(userID, shipping)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := repo.Save(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *CheckoutService) publish(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}
