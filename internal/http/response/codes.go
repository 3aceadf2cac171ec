package response

// 业务状态码，HTTP 状态恒为 200
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409 // 商品被历史订单引用、库存不足等状态冲突
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
