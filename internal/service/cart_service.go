package service

import (
	"time"

	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLine 购物车行（读取时按当前商品状态计算）
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Subtotal  models.Money    `json:"subtotal"`
	Available int             `json:"available"`
	Invalid   bool            `json:"invalid"` // 商品已删除或库存不足
	Product   *models.Product `json:"product,omitempty"`
}

// CartView 购物车视图
type CartView struct {
	Lines      []CartLine   `json:"lines"`
	ItemCount  int          `json:"item_count"`
	Total      models.Money `json:"total"`
	StockValid bool         `json:"stock_valid"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get 获取用户购物车；商品缺失的行标记为无效且不计入合计
func (s *CartService) Get(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Lines: make([]CartLine, 0, len(items)), StockValid: true}
	total := decimal.Zero
	for _, item := range items {
		line := CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		view.ItemCount += item.Quantity
		if item.Product == nil {
			line.Invalid = true
			view.StockValid = false
			view.Lines = append(view.Lines, line)
			continue
		}
		line.Product = item.Product
		line.UnitPrice = item.Product.Price
		line.Available = item.Product.Stock
		line.Subtotal = models.NewMoneyFromDecimal(item.Product.Price.Times(item.Quantity))
		if item.Quantity > item.Product.Stock {
			line.Invalid = true
			view.StockValid = false
		}
		total = total.Add(line.Subtotal.Decimal)
		view.Lines = append(view.Lines, line)
	}
	view.Total = models.NewMoneyFromDecimal(total)
	return view, nil
}

// AddOrSetQuantity 加入购物车；已存在时覆盖数量（非累加），返回最新件数
func (s *CartService) AddOrSetQuantity(userID, productID uint, quantity int) (int, error) {
	if userID == 0 {
		return 0, ErrUnauthenticated
	}
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if err := s.setLine(userID, productID, quantity); err != nil {
		return 0, err
	}
	return s.ItemCount(userID)
}

// UpdateQuantity 修改数量；数量 <= 0 视为移除，返回最新件数
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) (int, error) {
	if userID == 0 {
		return 0, ErrUnauthenticated
	}
	if quantity <= 0 {
		return s.Remove(userID, productID)
	}
	if err := s.setLine(userID, productID, quantity); err != nil {
		return 0, err
	}
	return s.ItemCount(userID)
}

// Remove 移除购物车项，返回最新件数
func (s *CartService) Remove(userID, productID uint) (int, error) {
	if userID == 0 {
		return 0, ErrUnauthenticated
	}
	if err := s.cartRepo.DeleteByUserAndProduct(userID, productID); err != nil {
		return 0, err
	}
	return s.ItemCount(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	return s.cartRepo.ClearByUser(userID)
}

// ItemCount 购物车件数（数量合计）
func (s *CartService) ItemCount(userID uint) (int, error) {
	if userID == 0 {
		return 0, ErrUnauthenticated
	}
	return s.cartRepo.SumQuantity(userID)
}

// Total 按当前商品价格计算购物车合计
func (s *CartService) Total(userID uint) (models.Money, error) {
	view, err := s.Get(userID)
	if err != nil {
		return models.Money{}, err
	}
	return view.Total, nil
}

// ValidateStock 所有行的商品仍存在且库存充足时返回 true
func (s *CartService) ValidateStock(userID uint) (bool, error) {
	view, err := s.Get(userID)
	if err != nil {
		return false, err
	}
	return view.StockValid, nil
}

func (s *CartService) setLine(userID, productID uint, quantity int) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	// 隐藏商品对顾客等同不存在
	if product == nil || !product.IsVisible {
		return ErrNotFound
	}
	// 入库新建的商品尚未定价
	if !product.Price.IsPositive() {
		return ErrProductUnavailable
	}
	if quantity > product.Stock {
		return newInsufficientStockError(product.ID, product.Name, product.Stock)
	}
	return s.cartRepo.Upsert(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	})
}
