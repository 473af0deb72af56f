// Package customer manages the saved delivery address of a user.
package customer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// AddressRequest is the body of an address upsert
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// ToShipping validates the request into a ShippingAddress
func (r AddressRequest) ToShipping() (valueobject.ShippingAddress, error) {
	return valueobject.NewShippingAddress(r.Street, r.City, r.State, r.PostalCode, r.Country)
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToAddressResponse converts a domain Address
func ToAddressResponse(a *customer.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Street:     a.Shipping.Street(),
		City:       a.Shipping.City(),
		State:      a.Shipping.State(),
		PostalCode: a.Shipping.PostalCode(),
		Country:    a.Shipping.Country(),
		IsDefault:  a.IsDefault,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AddressService handles the address book of the current user
type AddressService struct {
	addressRepo customer.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo customer.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// GetMine returns the user's saved address or shared.ErrNotFound
func (s *AddressService) GetMine(ctx context.Context, userID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponse(address), nil
}

// Upsert replaces the user's address, creating it if none exists
func (s *AddressService) Upsert(ctx context.Context, userID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	shipping, err := req.ToShipping()
	if err != nil {
		return nil, err
	}

	address, err := s.addressRepo.FindByUser(ctx, userID)
	switch {
	case err == nil:
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

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	return ToAddressResponse(address), nil
}

// DeleteMine removes the user's address
func (s *AddressService) DeleteMine(ctx context.Context, userID uuid.UUID) error {
	address, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, address.ID)
}
