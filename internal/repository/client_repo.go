package repository

import (
	"context"

	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRepository is owner-scoped by construction: every read takes the
// owner id, so a client belonging to someone else resolves as not-found.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Client, error)
	FindByCPF(ctx context.Context, cpf string, ownerID uuid.UUID) (*model.Client, error)
	FindByEmail(ctx context.Context, email string, ownerID uuid.UUID) (*model.Client, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ClientFilter) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	// Delete is the one unscoped mutation: the admin-only delete route may
	// remove any owner's client. Returns rows affected.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&c).Error
	return &c, err
}

func (r *clientRepo) FindByCPF(ctx context.Context, cpf string, ownerID uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("cpf = ? AND owner_id = ?", cpf, ownerID).First(&c).Error
	return &c, err
}

func (r *clientRepo) FindByEmail(ctx context.Context, email string, ownerID uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?) AND owner_id = ?", email, ownerID).First(&c).Error
	return &c, err
}

func (r *clientRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.ClientFilter) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		q = q.Where("email ILIKE ?", "%"+filter.Email+"%")
	}

	err := q.Order("name ASC").Offset(filter.Skip).Limit(filter.Limit).Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Client{})
	return res.RowsAffected, res.Error
}
