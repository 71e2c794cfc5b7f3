package repository

import (
	"context"

	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	// Delete is a hard delete. Returns rows affected so callers can signal
	// not-found instead of raising.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// DecrementStockTx is the atomic conditional decrement: it only fires
	// when the product still has qty units left, and reports rows affected
	// so the caller can distinguish "decremented" from "stock ran out".
	DecrementStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Description != "" {
		q = q.Where("description ILIKE ?", "%"+filter.Description+"%")
	}
	if filter.Session != "" {
		q = q.Where("session ILIKE ?", "%"+filter.Session+"%")
	}
	if filter.Available != nil {
		q = q.Where("available = ?", *filter.Available)
	}

	err := q.Order("description ASC").Offset(filter.Skip).Limit(filter.Limit).Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) DecrementStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND initial_stock >= ?", id, qty).
		Update("initial_stock", gorm.Expr("initial_stock - ?", qty))
	return res.RowsAffected, res.Error
}
