package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Rating bounds for product reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Comment is a customer review of a product
type Comment struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
	Content   string
	Rating    int
}

// NewComment creates a review; content must be non-empty and rating within 1..5
func NewComment(userID, productID uuid.UUID, content string, rating int) (*Comment, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Content:    content,
		Rating:     rating,
	}, nil
}

// Edit changes the review text and rating
func (c *Comment) Edit(content string, rating int) error {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return err
	}
	if err := validateRating(rating); err != nil {
		return err
	}
	c.Content = content
	c.Rating = rating
	c.UpdatedAt = time.Now()
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Comment cannot be empty")
	}
	if len(content) > 2000 {
		return shared.NewDomainError("INVALID_CONTENT", "Comment cannot exceed 2000 characters")
	}
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
