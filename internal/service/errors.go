package service

import (
	"errors"
	"fmt"
)

// 校验错误
var (
	ErrValidation              = errors.New("validation failed")
	ErrProductNameInvalid      = fmt.Errorf("%w: product name is required and must be at most 100 characters", ErrValidation)
	ErrProductCategoryInvalid  = fmt.Errorf("%w: category is required and must be at most 50 characters", ErrValidation)
	ErrProductPriceInvalid     = fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	ErrProductStockInvalid     = fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	ErrProductThresholdInvalid = fmt.Errorf("%w: low stock threshold cannot be negative", ErrValidation)
	ErrInvalidQuantity         = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	ErrReportDateInvalid       = fmt.Errorf("%w: report date is invalid", ErrValidation)
	ErrReportFormatInvalid     = fmt.Errorf("%w: unsupported report format", ErrValidation)
	ErrUsernameInvalid         = fmt.Errorf("%w: username is invalid", ErrValidation)
	ErrPasswordTooShort        = fmt.Errorf("%w: password is too short", ErrValidation)
)

// 业务错误
var (
	ErrNotFound           = errors.New("not found")
	ErrProductInUse       = errors.New("Cannot delete product because it exists in past orders.")
	ErrOutOfStock         = errors.New("out of stock")
	ErrEmptyCart          = errors.New("Your cart is empty.")
	ErrInvalidCartState   = errors.New("invalid cart state")
	ErrProductUnavailable = errors.New("product is not available for purchase")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
)

// 入库导入错误（文案与前端提示一致）
var (
	ErrNoFileProvided       = errors.New("No file provided.")
	ErrUnsupportedFileType  = errors.New("Unsupported file type. Upload PNG/JPG image.")
	ErrNoRecognizableItems  = errors.New("No recognizable items found in document.")
	ErrPDFOCRDisabled       = errors.New("PDF OCR is not enabled. Please upload an image (PNG/JPG) of the bill.")
	ErrOCRUnavailable       = errors.New("OCR text extraction is not configured.")
	ErrIngestUploadTooLarge = fmt.Errorf("%w: uploaded file is too large", ErrValidation)
)

// InsufficientStockError 库存不足，携带商品名与可用数量
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d", e.ProductName, e.Available)
}

// Unwrap 支持 errors.Is(err, ErrOutOfStock)
func (e *InsufficientStockError) Unwrap() error {
	return ErrOutOfStock
}

func newInsufficientStockError(productID uint, name string, available int) error {
	if available < 0 {
		available = 0
	}
	return &InsufficientStockError{ProductID: productID, ProductName: name, Available: available}
}
