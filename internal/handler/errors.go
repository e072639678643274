package handler

import (
	"errors"
	"strconv"

	"social-system/internal/service"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// handleServiceError 业务错误到HTTP状态码的统一映射
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, "internal server error")
	}
}

// parseUintParam 解析路径参数为uint
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// parsePagination 解析 ?page= 和 ?limit= 查询参数，缺省为 1/10
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	return page, limit
}
