package checkout

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// PaymentRequest is the body of the payment step
type PaymentRequest struct {
	Method     trade.PaymentMethod `json:"method" binding:"required,oneof=card paypal"`
	CardNumber string              `json:"card_number" binding:"omitempty,max=32"`
	CardName   string              `json:"card_name" binding:"omitempty,max=100"`
	ExpiryDate string              `json:"expiry_date" binding:"omitempty,max=7"`
	CVV        string              `json:"cvv" binding:"omitempty,max=4"`
}

// Authorizer approves or declines a payment
type Authorizer interface {
	Authorize(ctx context.Context, req PaymentRequest) error
}

// DeclinedCardNumber is a test card that the simulated authorizer always declines
const DeclinedCardNumber = "4000000000000002"

var (
	cardNumberPattern = regexp.MustCompile(`^\d{4}[ -]?\d{4}[ -]?\d{4}[ -]?\d{4}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// SimulatedAuthorizer validates card details and waits for a fixed delay in place of a payment gateway
type SimulatedAuthorizer struct {
	delay time.Duration
	now   func() time.Time
}

// NewSimulatedAuthorizer creates an authorizer that takes delay to respond
func NewSimulatedAuthorizer(delay time.Duration) *SimulatedAuthorizer {
	return &SimulatedAuthorizer{delay: delay, now: time.Now}
}

// Authorize validates the payment details, waits, and approves unless the card is the decline test card
func (a *SimulatedAuthorizer) Authorize(ctx context.Context, req PaymentRequest) error {
	if err := a.validate(req); err != nil {
		return err
	}

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if req.Method == trade.PaymentMethodCard && digitsOnly(req.CardNumber) == DeclinedCardNumber {
		return shared.ErrPaymentDeclined
	}
	return nil
}

func (a *SimulatedAuthorizer) validate(req PaymentRequest) error {
	switch req.Method {
	case trade.PaymentMethodPayPal:
		return nil
	case trade.PaymentMethodCard:
	default:
		return invalidPayment("Payment method must be card or paypal")
	}

	if !cardNumberPattern.MatchString(strings.TrimSpace(req.CardNumber)) {
		return invalidPayment("Card number must be 16 digits")
	}
	if strings.TrimSpace(req.CardName) == "" {
		return invalidPayment("Name on card is required")
	}
	if !cvvPattern.MatchString(req.CVV) {
		return invalidPayment("CVV must be 3 or 4 digits")
	}

	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(req.ExpiryDate))
	if m == nil {
		return invalidPayment("Expiry date must be MM/YY")
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	// Cards are valid through the last day of the expiry month
	expires := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !a.now().UTC().Before(expires) {
		return invalidPayment("Card has expired")
	}
	return nil
}

func invalidPayment(msg string) error {
	return shared.NewDomainError("INVALID_PAYMENT", msg)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
