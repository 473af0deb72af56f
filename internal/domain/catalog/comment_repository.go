package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CommentRepository defines the interface for review persistence
type CommentRepository interface {
	// FindByProduct returns a product's reviews, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Comment, error)

	// Save creates or updates a review
	Save(ctx context.Context, comment *Comment) error
}
