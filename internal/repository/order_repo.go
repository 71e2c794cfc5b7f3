package repository

import (
	"context"

	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error)
	// Delete hard-deletes the order; items cascade via the FK constraint.
	// Returns rows affected.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// Revision operations — all run inside the caller's transaction.
	UpdateFieldsTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	CreateItemTx(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error
	SaveItemTx(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error
	DeleteItemTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error

	// Transaction runs fn inside one database transaction; a returned error
	// rolls back everything fn did.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *orderRepo) CreateTx(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.StartDate != nil {
		q = q.Where("orders.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("orders.created_at <= ?", *filter.EndDate)
	}
	if filter.Section != "" {
		q = q.Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.session = ?", filter.Section).
			Distinct("orders.*")
	}
	if filter.OrderID != "" {
		q = q.Where("orders.id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		q = q.Where("orders.status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("orders.client_id = ?", filter.ClientID)
	}

	err := q.Preload("Items").
		Order("orders.number ASC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Order{})
	return res.RowsAffected, res.Error
}

func (r *orderRepo) UpdateFieldsTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(fields).Error
}

func (r *orderRepo) CreateItemTx(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *orderRepo) SaveItemTx(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error {
	return tx.WithContext(ctx).Save(item).Error
}

func (r *orderRepo) DeleteItemTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	return tx.WithContext(ctx).Where("id = ?", itemID).Delete(&model.OrderItem{}).Error
}
