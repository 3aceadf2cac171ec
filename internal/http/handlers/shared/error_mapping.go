package shared

import (
	"errors"

	"github.com/stationery-next/internal/http/response"
	"github.com/stationery-next/internal/i18n"
	"github.com/stationery-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 按规则表返回错误；库存不足单独带上商品名与可用数量。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.out_of_stock", stockErr.ProductName, stockErr.Available)
		RespondErrorWithMsg(c, response.CodeConflict, msg, nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组规则
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// ProductValidationRules 商品字段校验错误
var ProductValidationRules = []MappedError{
	{Target: service.ErrProductNameInvalid, Code: response.CodeBadRequest, Key: "error.product_name_invalid"},
	{Target: service.ErrProductCategoryInvalid, Code: response.CodeBadRequest, Key: "error.product_category_invalid"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductStockInvalid, Code: response.CodeBadRequest, Key: "error.product_stock_invalid"},
	{Target: service.ErrProductThresholdInvalid, Code: response.CodeBadRequest, Key: "error.product_threshold_invalid"},
}

// CatalogErrorRules 商品维护错误
var CatalogErrorRules = ConcatMappedErrors(ProductValidationRules, []MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInUse, Code: response.CodeConflict, Key: "error.product_in_use"},
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.bad_request"},
})

// CartErrorRules 购物车与结算错误
var CartErrorRules = []MappedError{
	{Target: service.ErrUnauthenticated, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.invalid_quantity"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrInvalidCartState, Code: response.CodeConflict, Key: "error.cart_invalid"},
	{Target: service.ErrProductUnavailable, Code: response.CodeConflict, Key: "error.product_unavailable"},
}

// AuthErrorRules 注册登录错误
var AuthErrorRules = []MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrUsernameExists, Code: response.CodeConflict, Key: "error.username_exists"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrPasswordTooShort, Code: response.CodeBadRequest, Key: "error.password_too_short"},
	{Target: service.ErrUnauthenticated, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

// ReportErrorRules 报表错误
var ReportErrorRules = []MappedError{
	{Target: service.ErrReportDateInvalid, Code: response.CodeBadRequest, Key: "error.report_date_invalid"},
	{Target: service.ErrReportFormatInvalid, Code: response.CodeBadRequest, Key: "error.report_format_invalid"},
}

// IngestErrorRules 入库导入错误
var IngestErrorRules = []MappedError{
	{Target: service.ErrNoFileProvided, Code: response.CodeBadRequest, Key: "error.no_file"},
	{Target: service.ErrUnsupportedFileType, Code: response.CodeBadRequest, Key: "error.unsupported_file"},
	{Target: service.ErrNoRecognizableItems, Code: response.CodeBadRequest, Key: "error.no_items"},
	{Target: service.ErrPDFOCRDisabled, Code: response.CodeBadRequest, Key: "error.pdf_ocr_disabled"},
	{Target: service.ErrOCRUnavailable, Code: response.CodeBadRequest, Key: "error.ocr_unavailable"},
	{Target: service.ErrIngestUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
}
