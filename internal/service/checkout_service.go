package service

import (
	"context"
	"errors"
	"time"

	"github.com/stationery-next/internal/cache"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService 结算服务：购物车 -> 订单，整体原子提交
type CheckoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	now         func() time.Time
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		now:         time.Now,
	}
}

// Checkout 结算：校验全部购物车行后，在同一事务内扣减库存、创建订单快照并清空购物车
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	lines, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.Product == nil || line.Quantity < 1 || !line.Product.Price.IsPositive() {
			return nil, ErrInvalidCartState
		}
		if line.Quantity > line.Product.Stock {
			return nil, newInsufficientStockError(line.Product.ID, line.Product.Name, line.Product.Stock)
		}
		items = append(items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
		})
		total = total.Add(line.Product.Price.Times(line.Quantity))
	}

	order := &models.Order{
		UserID:      userID,
		TotalAmount: models.NewMoneyFromDecimal(total),
		OrderDate:   s.now().UTC(),
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 并发结算导致库存变化，按事务内最新库存回报
				current, err := productRepo.GetByID(item.ProductID)
				if err != nil {
					return err
				}
				if current == nil {
					return ErrInvalidCartState
				}
				return newInsufficientStockError(current.ID, current.Name, current.Stock)
			}
		}
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if !errors.As(err, &stockErr) && !errors.Is(err, ErrInvalidCartState) {
			logger.Errorw("checkout_transaction_failed", "user_id", userID, "error", err)
		}
		return nil, err
	}

	if err := cache.InvalidateCatalog(ctx); err != nil {
		logger.Warnw("checkout_cache_invalidate_failed", "order_id", order.ID, "error", err)
	}
	logger.Infow("checkout_completed",
		"order_id", order.ID,
		"user_id", userID,
		"items", len(items),
		"total_amount", order.TotalAmount.String(),
	)
	return order, nil
}

// ListOrders 用户订单历史
func (s *CheckoutService) ListOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUnauthenticated
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetOrder 用户订单详情
func (s *CheckoutService) GetOrder(userID, orderID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}
