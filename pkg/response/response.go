package response

import (
	"net/http"
	"time"

	"social-system/internal/model"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// Code 与HTTP状态码一致（0表示成功场景下沿用200/201）
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他与HTTP状态码一致
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应（200）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，HTTP状态码即应用状态码
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409错误
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

const timeLayout = "2006-01-02 15:04:05"

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	IsActive    bool   `json:"is_active"`
	Status      string `json:"status"`
	LastSeen    string `json:"last_seen"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// FilterUserInfo 过滤用户信息，隐藏密码哈希等敏感字段
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	info := &UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		Location:  user.Location,
		Website:   user.Website,
		IsActive:  user.IsActive,
		Status:    user.Status,
		LastSeen:  user.LastSeen.Format(timeLayout),
		CreatedAt: user.CreatedAt.Format(timeLayout),
		UpdatedAt: user.UpdatedAt.Format(timeLayout),
	}
	if user.DateOfBirth != nil {
		info.DateOfBirth = user.DateOfBirth.Format("2006-01-02")
	}
	return info
}

// AuthorInfo 作者投影（引用解析后的公开字段）
type AuthorInfo struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// FilterAuthorInfo 过滤作者投影
func FilterAuthorInfo(user *model.User) *AuthorInfo {
	if user == nil {
		return nil
	}
	return &AuthorInfo{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	}
}

// PostInfo 帖子响应
type PostInfo struct {
	ID            uint        `json:"id"`
	Author        *AuthorInfo `json:"author"`
	Content       string      `json:"content"`
	Images        []string    `json:"images"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	IsActive      bool        `json:"is_active"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

// FilterPostInfo 过滤帖子信息
func FilterPostInfo(post *model.Post) *PostInfo {
	if post == nil {
		return nil
	}
	return &PostInfo{
		ID:            post.ID,
		Author:        FilterAuthorInfo(post.Author),
		Content:       post.Content,
		Images:        post.Images,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		IsActive:      post.IsActive,
		CreatedAt:     post.CreatedAt.Format(timeLayout),
		UpdatedAt:     post.UpdatedAt.Format(timeLayout),
	}
}

// FilterPostList 过滤帖子列表
func FilterPostList(posts []*model.Post) []*PostInfo {
	result := make([]*PostInfo, 0, len(posts))
	for _, p := range posts {
		result = append(result, FilterPostInfo(p))
	}
	return result
}

// CommentInfo 评论响应
type CommentInfo struct {
	ID         uint        `json:"id"`
	PostID     uint        `json:"post_id"`
	Author     *AuthorInfo `json:"author"`
	Content    string      `json:"content"`
	LikesCount int         `json:"likes_count"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

// FilterCommentInfo 过滤评论信息
func FilterCommentInfo(comment *model.Comment) *CommentInfo {
	if comment == nil {
		return nil
	}
	return &CommentInfo{
		ID:         comment.ID,
		PostID:     comment.PostID,
		Author:     FilterAuthorInfo(comment.Author),
		Content:    comment.Content,
		LikesCount: comment.LikesCount,
		IsActive:   comment.IsActive,
		CreatedAt:  comment.CreatedAt.Format(timeLayout),
		UpdatedAt:  comment.UpdatedAt.Format(timeLayout),
	}
}

// FilterCommentList 过滤评论列表
func FilterCommentList(comments []*model.Comment) []*CommentInfo {
	result := make([]*CommentInfo, 0, len(comments))
	for _, cm := range comments {
		result = append(result, FilterCommentInfo(cm))
	}
	return result
}

// FriendshipInfo 好友关系响应（引用已解析）
type FriendshipInfo struct {
	ID        uint        `json:"id"`
	Requester *AuthorInfo `json:"requester"`
	Recipient *AuthorInfo `json:"recipient"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// FilterFriendshipInfo 过滤好友关系信息
func FilterFriendshipInfo(f *model.Friendship) *FriendshipInfo {
	if f == nil {
		return nil
	}
	return &FriendshipInfo{
		ID:        f.ID,
		Requester: FilterAuthorInfo(f.Requester),
		Recipient: FilterAuthorInfo(f.Recipient),
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt.Format(timeLayout),
		UpdatedAt: f.UpdatedAt.Format(timeLayout),
	}
}

// FilterFriendshipList 过滤好友关系列表
func FilterFriendshipList(fs []*model.Friendship) []*FriendshipInfo {
	result := make([]*FriendshipInfo, 0, len(fs))
	for _, f := range fs {
		result = append(result, FilterFriendshipInfo(f))
	}
	return result
}

// FriendEntry 好友列表条目：关系ID + 对方用户 + 成为好友时间
type FriendEntry struct {
	FriendshipID uint        `json:"friendship_id"`
	Friend       *AuthorInfo `json:"friend"`
	Since        time.Time   `json:"since"`
}

// FriendshipStatusInfo 两个用户之间的关系状态
type FriendshipStatusInfo struct {
	Status         string `json:"status"`
	CanSendRequest bool   `json:"can_send_request"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// UploadResponse 文件上传响应
type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

// PaymentIntentResponse 支付意向响应
type PaymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}
