package service

// 分页默认值与上限
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// normalizePagination 归一化分页参数，返回 (limit, offset)
// page/limit 非正数时取默认值，limit 超过上限时截断
func normalizePagination(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, (page - 1) * limit
}
