package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommentRepository implements catalog.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByProduct returns a product's comments, newest first
func (r *GormCommentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Comment, error) {
	var rows []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	comments := make([]catalog.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, *rows[i].ToDomain())
	}
	return comments, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *catalog.Comment) error {
	return r.db.WithContext(ctx).Save(models.CommentModelFromDomain(comment)).Error
}

var _ catalog.CommentRepository = (*GormCommentRepository)(nil)
