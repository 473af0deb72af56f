package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CommentService handles product reviews
type CommentService struct {
	commentRepo catalog.CommentRepository
	productRepo catalog.ProductRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo catalog.CommentRepository, productRepo catalog.ProductRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
	}
}

// ListByProduct returns a product's reviews, newest first
func (s *CommentService) ListByProduct(ctx context.Context, productID uuid.UUID) (*CommentListResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := &CommentListResponse{
		Comments:      make([]CommentResponse, len(comments)),
		AverageRating: decimal.Zero,
		Count:         len(comments),
	}
	sum := 0
	for i := range comments {
		response.Comments[i] = ToCommentResponse(&comments[i])
		sum += comments[i].Rating
	}
	if len(comments) > 0 {
		response.AverageRating = decimal.NewFromInt(int64(sum)).
			DivRound(decimal.NewFromInt(int64(len(comments))), 1)
	}
	return response, nil
}

// Create adds a review by userID to an existing product
func (s *CommentService) Create(ctx context.Context, userID, productID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	comment, err := catalog.NewComment(userID, productID, req.Content, req.Rating)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	response := ToCommentResponse(comment)
	return &response, nil
}
