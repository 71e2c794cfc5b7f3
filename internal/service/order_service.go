package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gleysonwener/new-lu/internal/domain"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error)
	Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo        repository.OrderRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
) OrderService {
	return &orderService{repo: repo, productRepo: productRepo, clientRepo: clientRepo}
}

// ── Create ────────────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. resolve the client through the requester's owner scope
//  2. insert the order as pending
//  3. per line item: load product, capture price, insert the item, and
//     atomically decrement that product's stock with a floor guard —
//     zero rows affected means the stock ran out and the whole order
//     rolls back
//  4. persist total_order_price = Σ subtotals
//
// The decrement guard makes concurrent orders and repeated lines for the
// same product safe: each decrement only fires while enough units remain.

func (s *orderService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	client, err := s.clientRepo.FindByID(ctx, clientID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: client", domain.ErrNotFound)
	}

	order := &model.Order{
		ClientID:   client.ID,
		Status:     model.OrderStatusPending,
		TotalPrice: decimal.Zero,
	}

	txErr := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range req.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return fmt.Errorf("%w: product", domain.ErrNotFound)
			}
			product, err := s.productRepo.FindByIDTx(ctx, tx, productID)
			if err != nil {
				return fmt.Errorf("%w: product %s", domain.ErrNotFound, line.ProductID)
			}
			if line.Quantity > product.InitialStock {
				return fmt.Errorf("%w for product %s", domain.ErrInsufficientStock, line.ProductID)
			}

			subtotal := product.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			item := &model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Subtotal:  subtotal,
			}
			if err := s.repo.CreateItemTx(ctx, tx, item); err != nil {
				return err
			}

			affected, err := s.productRepo.DecrementStockTx(ctx, tx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// A prior line for the same product (or a concurrent
				// order) consumed the remaining units.
				return fmt.Errorf("%w for product %s", domain.ErrInsufficientStock, line.ProductID)
			}

			order.Items = append(order.Items, *item)
			total = total.Add(subtotal)
		}

		order.TotalPrice = total
		return s.repo.UpdateFieldsTx(ctx, tx, order.ID, map[string]interface{}{"total_price": total})
	})
	if txErr != nil {
		return nil, txErr
	}

	return orderToResponse(order), nil
}

// ── Revision ──────────────────────────────────────────────────────────────────
// The patch's item list is the full desired set expressed as a diff: existing
// products get a new quantity (subtotal repriced at the product's current
// sale price, updated_at refreshed), new products are appended, and items
// whose product is absent are removed. Stock is not touched in this path.
// Totals are recomputed from the resulting set inside the same transaction.

func (s *orderService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if req.Status != nil && !model.ValidOrderStatus(*req.Status) {
		return nil, domain.ErrInvalidStatus
	}
	// Cancelled is terminal: no item mutation and no reopening.
	if order.Status == model.OrderStatusCancelled {
		if req.Items != nil {
			return nil, domain.ErrOrderCancelled
		}
		if req.Status != nil && *req.Status != model.OrderStatusCancelled {
			return nil, domain.ErrOrderCancelled
		}
	}

	fields := map[string]interface{}{}
	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("%w: client", domain.ErrNotFound)
		}
		client, err := s.clientRepo.FindByID(ctx, clientID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("%w: client", domain.ErrNotFound)
		}
		fields["client_id"] = client.ID
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	txErr := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if req.Items != nil {
			itemIdx := make(map[uuid.UUID]int, len(order.Items))
			for i := range order.Items {
				itemIdx[order.Items[i].ProductID] = i
			}

			// Items are addressed by index only: a pointer taken before an
			// append would keep writing into the stale backing array.
			kept := make(map[uuid.UUID]bool, len(req.Items))
			addedIdx := make(map[uuid.UUID]int)
			var added []model.OrderItem
			for _, line := range req.Items {
				productID, err := uuid.Parse(line.ProductID)
				if err != nil {
					return fmt.Errorf("%w: product", domain.ErrNotFound)
				}
				product, err := s.productRepo.FindByIDTx(ctx, tx, productID)
				if err != nil {
					return fmt.Errorf("%w: product %s", domain.ErrNotFound, line.ProductID)
				}
				subtotal := product.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
				kept[productID] = true

				if i, ok := itemIdx[productID]; ok {
					order.Items[i].Quantity = line.Quantity
					order.Items[i].Subtotal = subtotal
					order.Items[i].UpdatedAt = time.Now()
					if err := s.repo.SaveItemTx(ctx, tx, &order.Items[i]); err != nil {
						return err
					}
					continue
				}
				if j, ok := addedIdx[productID]; ok {
					added[j].Quantity = line.Quantity
					added[j].Subtotal = subtotal
					added[j].UpdatedAt = time.Now()
					if err := s.repo.SaveItemTx(ctx, tx, &added[j]); err != nil {
						return err
					}
					continue
				}

				item := model.OrderItem{
					OrderID:   order.ID,
					ProductID: productID,
					Quantity:  line.Quantity,
					Subtotal:  subtotal,
				}
				if err := s.repo.CreateItemTx(ctx, tx, &item); err != nil {
					return err
				}
				addedIdx[productID] = len(added)
				added = append(added, item)
			}

			remaining := order.Items[:0]
			for i := range order.Items {
				item := order.Items[i]
				if !kept[item.ProductID] {
					if err := s.repo.DeleteItemTx(ctx, tx, item.ID); err != nil {
						return err
					}
					continue
				}
				remaining = append(remaining, item)
			}
			order.Items = append(remaining, added...)
		}

		total := decimal.Zero
		for _, item := range order.Items {
			total = total.Add(item.Subtotal)
		}
		order.TotalPrice = total
		fields["total_price"] = total

		return s.repo.UpdateFieldsTx(ctx, tx, order.ID, fields)
	})
	if txErr != nil {
		return nil, txErr
	}

	if req.ClientID != nil {
		order.ClientID = fields["client_id"].(uuid.UUID)
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	return orderToResponse(order), nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = *orderToResponse(&o)
	}
	return resp, nil
}

// Delete hard-deletes the order and its items. Stock is not restored:
// restocking on cancellation is explicitly out of scope.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID.String(),
		Number:          o.Number,
		ClientID:        o.ClientID.String(),
		Status:          o.Status,
		TotalOrderPrice: o.TotalPrice,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}
