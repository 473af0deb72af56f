package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// DefaultCountry is used when a shipping address is submitted without one
const DefaultCountry = "United States"

// ShippingAddress is a value object representing a delivery address.
// It is immutable.
type ShippingAddress struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
}

// NewShippingAddress creates a validated shipping address.
// Street, city, state and postal code are required; an empty country defaults to DefaultCountry.
func NewShippingAddress(street, city, state, postalCode, country string) (ShippingAddress, error) {
	addr := ShippingAddress{
		street:     strings.TrimSpace(street),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
	}
	if addr.country == "" {
		addr.country = DefaultCountry
	}

	if err := requireField("street", addr.street, 255); err != nil {
		return ShippingAddress{}, err
	}
	if err := requireField("city", addr.city, 100); err != nil {
		return ShippingAddress{}, err
	}
	if err := requireField("state", addr.state, 100); err != nil {
		return ShippingAddress{}, err
	}
	if err := requireField("postal code", addr.postalCode, 20); err != nil {
		return ShippingAddress{}, err
	}
	if len(addr.country) > 100 {
		return ShippingAddress{}, shared.NewDomainError("INVALID_ADDRESS", "country cannot exceed 100 characters")
	}

	return addr, nil
}

// RestoreShippingAddress rebuilds an address from stored fields without validation
func RestoreShippingAddress(street, city, state, postalCode, country string) ShippingAddress {
	return ShippingAddress{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
	}
}

// Street returns the street line
func (a ShippingAddress) Street() string {
	return a.street
}

// City returns the city
func (a ShippingAddress) City() string {
	return a.city
}

// State returns the state or province
func (a ShippingAddress) State() string {
	return a.state
}

// PostalCode returns the postal code
func (a ShippingAddress) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a ShippingAddress) Country() string {
	return a.country
}

// IsEmpty returns true if no field is set
func (a ShippingAddress) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" && a.postalCode == ""
}

// String returns a single-line rendering of the address
func (a ShippingAddress) String() string {
	if a.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.postalCode, a.country)
}

// Equals reports whether both addresses have identical fields
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

// AddressDTO is the serializable form of ShippingAddress
type AddressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ToDTO converts the address to its serializable form
func (a ShippingAddress) ToDTO() AddressDTO {
	return AddressDTO{
		Street:     a.street,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	}
}

// ToAddress validates the DTO and converts it to a ShippingAddress
func (dto AddressDTO) ToAddress() (ShippingAddress, error) {
	return NewShippingAddress(dto.Street, dto.City, dto.State, dto.PostalCode, dto.Country)
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToDTO())
}

// UnmarshalJSON implements json.Unmarshaler.
// An empty object decodes to the zero address without validation.
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var dto AddressDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("failed to unmarshal address: %w", err)
	}
	if dto == (AddressDTO{}) {
		*a = ShippingAddress{}
		return nil
	}
	addr, err := dto.ToAddress()
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func requireField(name, value string, maxLen int) error {
	if value == "" {
		return shared.NewDomainError("INVALID_ADDRESS", name+" cannot be empty")
	}
	if len(value) > maxLen {
		return shared.NewDomainError("INVALID_ADDRESS", fmt.Sprintf("%s cannot exceed %d characters", name, maxLen))
	}
	return nil
}
