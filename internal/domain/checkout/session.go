// Package checkout models the three-step checkout flow: shipping, payment, confirmation.
package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Step is a stage of the checkout flow
type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// IsValid checks if the step is known
func (s Step) IsValid() bool {
	switch s {
	case StepShipping, StepPayment, StepConfirmation:
		return true
	}
	return false
}

// PlacedOrder is the price breakdown of the order a session confirmed
type PlacedOrder struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Session tracks one user's progress through checkout.
// Steps advance strictly shipping → payment → confirmation; the only way back is payment → shipping.
type Session struct {
	UserID    uuid.UUID                   `json:"user_id"`
	Step      Step                        `json:"step"`
	Shipping  valueobject.ShippingAddress `json:"shipping"`
	OrderID   *uuid.UUID                  `json:"order_id,omitempty"`
	Placed    *PlacedOrder                `json:"placed,omitempty"`
	StartedAt time.Time                   `json:"started_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// NewSession starts checkout at the shipping step, optionally prefilled with a saved address
func NewSession(userID uuid.UUID, prefill valueobject.ShippingAddress) *Session {
	now := time.Now()
	return &Session{
		UserID:    userID,
		Step:      StepShipping,
		Shipping:  prefill,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SubmitShipping records the shipping address and advances to payment
func (s *Session) SubmitShipping(addr valueobject.ShippingAddress) error {
	if s.Step != StepShipping {
		return invalidStep("shipping can only be submitted at the shipping step")
	}
	if addr.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	s.Shipping = addr
	s.Step = StepPayment
	s.UpdatedAt = time.Now()
	return nil
}

// Back returns from payment to shipping
func (s *Session) Back() error {
	if s.Step != StepPayment {
		return invalidStep("can only go back from the payment step")
	}
	s.Step = StepShipping
	s.UpdatedAt = time.Now()
	return nil
}

// CanPay returns nil if payment may be submitted
func (s *Session) CanPay() error {
	if s.Step != StepPayment {
		return invalidStep("payment can only be submitted at the payment step")
	}
	if s.Shipping.IsEmpty() {
		return invalidStep("shipping address has not been submitted")
	}
	return nil
}

// Confirm marks the order as placed and advances to confirmation
func (s *Session) Confirm(orderID uuid.UUID, placed PlacedOrder) error {
	if err := s.CanPay(); err != nil {
		return err
	}
	s.OrderID = &orderID
	s.Placed = &placed
	s.Step = StepConfirmation
	s.UpdatedAt = time.Now()
	return nil
}

// IsComplete returns true once the order has been placed
func (s *Session) IsComplete() bool {
	return s.Step == StepConfirmation
}

func invalidStep(msg string) error {
	return shared.NewDomainError("INVALID_STATE", msg)
}
