package service

import "errors"

// 业务错误类别，handler层通过 errors.Is 映射为HTTP状态码
var (
	// ErrNotFound 目标实体不存在 -> 404
	ErrNotFound = errors.New("resource not found")
	// ErrPermissionDenied 调用者对实体无权限 -> 403
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict 关系记录重复 -> 409
	ErrConflict = errors.New("resource conflict")
	// ErrInvalidCredentials 凭证校验失败 -> 401
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation 输入不合法 -> 400
	ErrValidation = errors.New("validation failed")
)
