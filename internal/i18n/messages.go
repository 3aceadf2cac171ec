package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"common.success": "success",

		"error.bad_request":            "Invalid request parameters.",
		"error.unauthorized":           "Please log in first.",
		"error.forbidden":              "You do not have permission to perform this action.",
		"error.not_found":              "Resource not found.",
		"error.internal":               "Internal server error.",
		"error.rate_limited":           "Too many attempts. Please retry in %d seconds.",
		"error.rate_limit_unavailable": "Rate limiting is temporarily unavailable.",
		"error.jwt_secret_missing":     "Token signing key is not configured.",
		"error.auth_header_missing":    "Authorization header is missing.",
		"error.auth_header_invalid":    "Authorization header must be a Bearer token.",
		"error.token_invalid":          "Login has expired or the token is invalid.",
		"error.user_not_found":         "User not found.",
		"error.login_invalid":          "Invalid username or password.",
		"error.username_exists":        "Username already exists.",
		"error.username_invalid":       "Username must be 3-50 letters, digits, dots, dashes or underscores.",
		"error.password_too_short":     "Password is too short.",

		"error.product_not_found":         "Product not found.",
		"error.product_in_use":            "Cannot delete product because it exists in past orders.",
		"error.product_name_invalid":      "Product name is required and must be at most 100 characters.",
		"error.product_category_invalid":  "Category is required and must be at most 50 characters.",
		"error.product_price_invalid":     "Price must be greater than 0.",
		"error.product_stock_invalid":     "Stock quantity cannot be negative.",
		"error.product_threshold_invalid": "Low stock threshold cannot be negative.",
		"error.invalid_quantity":          "Quantity must be at least 1.",
		"error.out_of_stock":              "Insufficient stock for %s. Available: %d",
		"error.cart_empty":                "Your cart is empty.",
		"error.cart_invalid":              "Some items in your cart are no longer available.",
		"error.product_unavailable":       "This product is not available for purchase yet.",
		"error.order_not_found":           "Order not found.",

		"error.report_date_invalid":   "Invalid report date, expected YYYY-MM-DD.",
		"error.report_format_invalid": "Unsupported export format.",
		"error.report_failed":         "Failed to build the sales report.",

		"error.no_file":              "No file provided.",
		"error.unsupported_file":     "Unsupported file type. Upload PNG/JPG image.",
		"error.no_items":             "No recognizable items found in document.",
		"error.pdf_ocr_disabled":     "PDF OCR is not enabled. Please upload an image (PNG/JPG) of the bill.",
		"error.ocr_unavailable":      "OCR text extraction is not configured.",
		"error.upload_too_large":     "Uploaded file is too large.",
		"error.ingest_failed":        "Failed to update inventory.",
		"error.queue_enqueue_failed": "Failed to schedule the inventory update.",

		"msg.cart_updated":       "Cart updated.",
		"msg.product_deleted":    "Product deleted.",
		"msg.inventory_queued":   "Inventory update queued.",
		"msg.inventory_received": "Inventory updated: %d created, %d updated.",
	},
	LocaleZH: {
		"common.success": "成功",

		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "请先登录",
		"error.forbidden":              "无权执行该操作",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.rate_limited":           "操作过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务暂不可用",
		"error.jwt_secret_missing":     "未配置令牌签名密钥",
		"error.auth_header_missing":    "缺少 Authorization 请求头",
		"error.auth_header_invalid":    "Authorization 必须为 Bearer 令牌",
		"error.token_invalid":          "登录已过期或令牌无效",
		"error.user_not_found":         "用户不存在",
		"error.login_invalid":          "用户名或密码错误",
		"error.username_exists":        "用户名已存在",
		"error.username_invalid":       "用户名需为 3-50 位字母、数字、点、横线或下划线",
		"error.password_too_short":     "密码长度不足",

		"error.product_not_found":         "商品不存在",
		"error.product_in_use":            "商品已存在于历史订单中，无法删除",
		"error.product_name_invalid":      "商品名称必填且不超过 100 个字符",
		"error.product_category_invalid":  "分类必填且不超过 50 个字符",
		"error.product_price_invalid":     "价格必须大于 0",
		"error.product_stock_invalid":     "库存不能为负数",
		"error.product_threshold_invalid": "低库存阈值不能为负数",
		"error.invalid_quantity":          "数量至少为 1",
		"error.out_of_stock":              "%s 库存不足，可用数量：%d",
		"error.cart_empty":                "购物车为空",
		"error.cart_invalid":              "购物车中有商品已失效",
		"error.product_unavailable":       "该商品暂不可购买",
		"error.order_not_found":           "订单不存在",

		"error.report_date_invalid":   "报表日期无效，格式应为 YYYY-MM-DD",
		"error.report_format_invalid": "不支持的导出格式",
		"error.report_failed":         "销售报表生成失败",

		"error.no_file":              "未上传文件",
		"error.unsupported_file":     "不支持的文件类型，请上传 PNG/JPG 图片",
		"error.no_items":             "文档中未识别到商品",
		"error.pdf_ocr_disabled":     "未启用 PDF 识别，请上传账单图片（PNG/JPG）",
		"error.ocr_unavailable":      "未配置 OCR 文字识别",
		"error.upload_too_large":     "上传文件过大",
		"error.ingest_failed":        "库存更新失败",
		"error.queue_enqueue_failed": "库存更新任务提交失败",

		"msg.cart_updated":       "购物车已更新",
		"msg.product_deleted":    "商品已删除",
		"msg.inventory_queued":   "库存更新任务已提交",
		"msg.inventory_received": "库存已更新：新建 %d 个，更新 %d 个",
	},
	LocaleTW: {
		"common.success":      "成功",
		"error.unauthorized":  "請先登入",
		"error.forbidden":     "無權執行該操作",
		"error.not_found":     "資源不存在",
		"error.internal":      "伺服器內部錯誤",
		"error.rate_limited":  "操作過於頻繁，請 %d 秒後重試",
		"error.token_invalid": "登入已過期或權杖無效",
		"error.login_invalid": "使用者名稱或密碼錯誤",
		"error.out_of_stock":  "%s 庫存不足，可用數量：%d",
		"error.cart_empty":    "購物車為空",
	},
}
