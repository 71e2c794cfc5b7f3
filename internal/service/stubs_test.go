package service_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errStubNotFound = errors.New("record not found")

// cloneRows deep-copies a row map so a failed stub transaction can restore
// the pre-transaction state, mimicking a database rollback.
func cloneRows[K comparable, V any](rows map[K]*V) map[K]*V {
	out := make(map[K]*V, len(rows))
	for k, v := range rows {
		cp := *v
		out[k] = &cp
	}
	return out
}

// ── Users ─────────────────────────────────────────────────────────────────────

// stubUserRepo is an in-memory UserRepository for testing.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) CreateTx(_ context.Context, _ *gorm.DB, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) CountTx(_ context.Context, _ *gorm.DB) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	snapshot := cloneRows(r.users)
	if err := fn(nil); err != nil {
		r.users = snapshot
		return err
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Clients ───────────────────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id, ownerID uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.OwnerID != ownerID {
		return nil, errStubNotFound
	}
	return c, nil
}

func (r *stubClientRepo) FindByCPF(_ context.Context, cpf string, ownerID uuid.UUID) (*model.Client, error) {
	for _, c := range r.clients {
		if c.CPF == cpf && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string, ownerID uuid.UUID) (*model.Client, error) {
	for _, c := range r.clients {
		if c.Email == email && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubClientRepo) List(_ context.Context, ownerID uuid.UUID, _ dto.ClientFilter) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.clients {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.clients[id]; !ok {
		return 0, nil
	}
	delete(r.clients, id)
	return 1, nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errStubNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

func (r *stubProductRepo) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

// DecrementStockTx mirrors the conditional UPDATE: it only fires while the
// product still has qty units left.
func (r *stubProductRepo) DecrementStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.InitialStock < qty {
		return 0, nil
	}
	p.InitialStock -= qty
	return 1, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Orders ────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders    map[uuid.UUID]*model.Order
	items     map[uuid.UUID]*model.OrderItem
	itemOrder []uuid.UUID // insertion order, mimics Preload ordering
	numberSeq int

	// productRepo shares the transaction scope: stock decrements roll back
	// with the order on failure, like rows of one database.
	productRepo *stubProductRepo
}

func newStubOrderRepo(productRepo *stubProductRepo) *stubOrderRepo {
	return &stubOrderRepo{
		orders:      make(map[uuid.UUID]*model.Order),
		items:       make(map[uuid.UUID]*model.OrderItem),
		productRepo: productRepo,
	}
}

func (r *stubOrderRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	orders := cloneRows(r.orders)
	items := cloneRows(r.items)
	itemOrder := append([]uuid.UUID(nil), r.itemOrder...)
	seq := r.numberSeq
	products := cloneRows(r.productRepo.products)

	if err := fn(nil); err != nil {
		r.orders, r.items, r.itemOrder, r.numberSeq = orders, items, itemOrder, seq
		r.productRepo.products = products
		return err
	}
	return nil
}

func (r *stubOrderRepo) CreateTx(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.numberSeq++
	o.Number = r.numberSeq
	o.CreatedAt = time.Now()
	stored := *o
	stored.Items = nil
	r.orders[o.ID] = &stored
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errStubNotFound
	}
	out := *o
	out.Items = r.itemsOf(id)
	return &out, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for id, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && o.ClientID.String() != filter.ClientID {
			continue
		}
		cp := *o
		cp.Items = r.itemsOf(id)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.orders[id]; !ok {
		return 0, nil
	}
	delete(r.orders, id)
	for itemID, item := range r.items {
		if item.OrderID == id {
			delete(r.items, itemID)
		}
	}
	return 1, nil
}

func (r *stubOrderRepo) UpdateFieldsTx(_ context.Context, _ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	o, ok := r.orders[id]
	if !ok {
		return errStubNotFound
	}
	if v, ok := fields["total_price"]; ok {
		o.TotalPrice = v.(decimal.Decimal)
	}
	if v, ok := fields["client_id"]; ok {
		o.ClientID = v.(uuid.UUID)
	}
	if v, ok := fields["status"]; ok {
		o.Status = v.(string)
	}
	return nil
}

func (r *stubOrderRepo) CreateItemTx(_ context.Context, _ *gorm.DB, item *model.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	r.items[item.ID] = &stored
	r.itemOrder = append(r.itemOrder, item.ID)
	return nil
}

func (r *stubOrderRepo) SaveItemTx(_ context.Context, _ *gorm.DB, item *model.OrderItem) error {
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *stubOrderRepo) DeleteItemTx(_ context.Context, _ *gorm.DB, itemID uuid.UUID) error {
	delete(r.items, itemID)
	return nil
}

func (r *stubOrderRepo) itemsOf(orderID uuid.UUID) []model.OrderItem {
	var items []model.OrderItem
	for _, id := range r.itemOrder {
		item, ok := r.items[id]
		if ok && item.OrderID == orderID {
			items = append(items, *item)
		}
	}
	return items
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, description string, price float64, stock int) *model.Product {
	p := &model.Product{
		ID:           uuid.New(),
		Description:  description,
		SalePrice:    decimal.NewFromFloat(price),
		Barcode:      uuid.New().String(),
		Session:      "general",
		InitialStock: stock,
		Available:    true,
	}
	repo.products[p.ID] = p
	return p
}

func seedClient(repo *stubClientRepo, name, email, cpf string, ownerID uuid.UUID) *model.Client {
	c := &model.Client{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		CPF:     cpf,
		OwnerID: ownerID,
	}
	repo.clients[c.ID] = c
	return c
}
