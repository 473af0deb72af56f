package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/trade"
)

// ShippingRequest is the body of the shipping step
type ShippingRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// Summary is the price breakdown shown during checkout
type Summary struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewSummary computes the breakdown for a subtotal
func NewSummary(subtotal decimal.Decimal, itemCount int) Summary {
	return Summary{
		Subtotal:  subtotal,
		Tax:       valueobject.TaxOn(subtotal),
		Total:     valueobject.WithTax(subtotal),
		ItemCount: itemCount,
	}
}

// SessionResponse is the current checkout state
type SessionResponse struct {
	Step     checkout.Step           `json:"step"`
	Shipping *valueobject.AddressDTO `json:"shipping,omitempty"`
	OrderID  *uuid.UUID              `json:"order_id,omitempty"`
	Summary  Summary                 `json:"summary"`
	// Next is the route the client should show for the current step
	Next      string    `json:"next"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConfirmationResponse is returned when payment succeeds
type ConfirmationResponse struct {
	OrderID uuid.UUID     `json:"order_id"`
	Status  string        `json:"status"`
	Step    checkout.Step `json:"step"`
	Summary Summary       `json:"summary"`
}

func summaryOf(o *trade.Order) Summary {
	return Summary{
		Subtotal:  o.Subtotal(),
		Tax:       o.Tax(),
		Total:     o.TotalAmount,
		ItemCount: o.ItemCount(),
	}
}

func toSessionResponse(s *checkout.Session, c *cart.Cart) *SessionResponse {
	resp := &SessionResponse{
		Step:      s.Step,
		OrderID:   s.OrderID,
		UpdatedAt: s.UpdatedAt,
		Next:      "/checkout/" + string(s.Step),
	}
	if !s.Shipping.IsEmpty() {
		dto := s.Shipping.ToDTO()
		resp.Shipping = &dto
	}
	switch {
	case s.Placed != nil:
		resp.Summary = Summary(*s.Placed)
	case c != nil:
		resp.Summary = NewSummary(c.Subtotal(), c.ItemCount())
	default:
		resp.Summary = NewSummary(decimal.Zero, 0)
	}
	return resp
}
