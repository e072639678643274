package handler

import (
	"time"

	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	"social-system/pkg/redis"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 用户与认证HTTP处理器
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	DateOfBirth string `json:"date_of_birth"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 资料更新请求，缺省字段不更新
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	DateOfBirth *string `json:"date_of_birth"`
}

// Register 注册新账号
// POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		Bio:       req.Bio,
		Location:  req.Location,
		Website:   req.Website,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			response.BadRequest(c, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
		in.DateOfBirth = &dob
	}

	user, token, err := h.userService.Register(in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("用户注册成功", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	response.Created(c, "注册成功", response.RegisterResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Login 登录
// POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, token, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("用户登录成功", zap.Uint("user_id", user.ID))
	response.SuccessWithMessage(c, "登录成功", response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// GetProfile 获取当前用户资料
// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// UpdateProfile 更新当前用户资料
// PATCH /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	upd := service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		Bio:       req.Bio,
		Location:  req.Location,
		Website:   req.Website,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			response.BadRequest(c, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
		upd.DateOfBirth = &dob
	}

	user, err := h.userService.UpdateProfile(userID, upd)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "更新成功", response.FilterUserInfo(user))
}

// Logout 登出
// POST /users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	if err := h.userService.Logout(userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "登出成功", nil)
}

// GetOnlineUsers 获取在线用户列表
// GET /users/online
func (h *UserHandler) GetOnlineUsers(c *gin.Context) {
	users, err := redis.GetOnlineUsersWithDetails()
	if err != nil {
		logger.Warn("获取在线用户失败", zap.Error(err))
		response.Success(c, gin.H{"online_users": []interface{}{}, "count": 0})
		return
	}
	response.Success(c, gin.H{"online_users": users, "count": len(users)})
}

// CheckUserOnline 检查指定用户是否在线
// GET /users/online/:userId
func (h *UserHandler) CheckUserOnline(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	online, err := redis.IsUserOnline(userID)
	if err != nil {
		logger.Warn("查询用户在线状态失败", zap.Uint("user_id", userID), zap.Error(err))
		online = false
	}
	response.Success(c, gin.H{"user_id": userID, "online": online})
}
