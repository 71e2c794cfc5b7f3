package service

import (
	"context"
	"fmt"

	"github.com/gleysonwener/new-lu/internal/domain"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"

	"github.com/google/uuid"
)

// ProductService manages the shared catalog. Products have no owner: any
// authenticated user may create and update them.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil {
		return nil, fmt.Errorf("%w: product with barcode %s", domain.ErrDuplicate, req.Barcode)
	}

	product := &model.Product{
		Description:    req.Description,
		SalePrice:      req.SalePrice,
		Barcode:        req.Barcode,
		Session:        req.Session,
		InitialStock:   req.InitialStock,
		ExpirationDate: req.ExpirationDate,
		Images:         req.Images,
		Available:      true,
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = *productToResponse(&p)
	}
	return resp, nil
}

// Update applies only the fields explicitly supplied; unset fields are left
// untouched, not nulled.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if req.Barcode != nil && *req.Barcode != product.Barcode {
		if existing, err := s.repo.FindByBarcode(ctx, *req.Barcode); err == nil && existing.ID != product.ID {
			return nil, fmt.Errorf("%w: product with barcode %s", domain.ErrDuplicate, *req.Barcode)
		}
		product.Barcode = *req.Barcode
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.Session != nil {
		product.Session = *req.Session
	}
	if req.InitialStock != nil {
		product.InitialStock = *req.InitialStock
	}
	if req.ExpirationDate != nil {
		product.ExpirationDate = req.ExpirationDate
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID.String(),
		Description:    p.Description,
		SalePrice:      p.SalePrice,
		Barcode:        p.Barcode,
		Session:        p.Session,
		InitialStock:   p.InitialStock,
		ExpirationDate: p.ExpirationDate,
		Images:         p.Images,
		Available:      p.Available,
	}
}
