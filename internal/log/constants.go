package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyRequestID     = "requestId"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"

	KeyEmail      = "email"
	KeyUserID     = "userId"
	KeyBookID     = "bookId"
	KeyCategoryID = "categoryId"
	KeyCartID     = "cartId"
	KeyCartItemID = "cartItemId"
	KeyOrderID    = "orderId"
	KeyOrderItems = "orderItems"
	KeyQuantity   = "quantity"
	KeyStatus     = "status"
	KeyCacheKey   = "cacheKey"
	KeyDbURL      = "dbUrl"
	KeyPathValues = "pathValues"
)
