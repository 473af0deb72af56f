// Package admin implements the back-office: product management, image uploads and the dashboard.
package admin

import (
	"context"
	"path"

	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles admin product CRUD
type ProductService struct {
	productRepo    catalog.ProductRepository
	images         ImageStorage
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new admin ProductService
func NewProductService(productRepo catalog.ProductRepository, images ImageStorage, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		images:      images,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for product events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns products for the admin table
func (s *ProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	domainFilter := filter.ToDomain()
	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return catalogapp.ToProductResponses(products), total, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*catalogapp.ProductResponse, error) {
	product, err := catalog.NewProduct(req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, product)
	response := catalogapp.ToProductResponse(product)
	return &response, nil
}

// Update replaces a product's attributes. A replaced image stored by us is deleted.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*catalogapp.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := product.Image
	if err := product.Update(req.toDetails()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if oldImage != product.Image {
		s.deleteImage(ctx, oldImage)
	}
	s.publish(ctx, product)
	response := catalogapp.ToProductResponse(product)
	return &response, nil
}

// Delete removes a product. Orders keep their item rows.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteImage(ctx, product.Image)
	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publish(ctx, product)
	return nil
}

// ImageUpload returns a presigned URL for uploading a new image of a product
func (s *ProductService) ImageUpload(ctx context.Context, id uuid.UUID, req ImageUploadRequest) (*UploadTarget, error) {
	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unsupported image type: "+req.ContentType)
	}
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	key := path.Join("products", id.String(), uuid.NewString()+ext)
	return s.images.PresignUpload(ctx, key, req.ContentType)
}

func (s *ProductService) deleteImage(ctx context.Context, imageURL string) {
	key := s.images.KeyFromURL(imageURL)
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to delete product image", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish product events", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
}
