package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 帖子HTTP处理器
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建PostHandler实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images"`
}

// UpdatePostRequest 帖子更新请求，缺省字段不更新
type UpdatePostRequest struct {
	Content *string   `json:"content"`
	Images  *[]string `json:"images"`
}

// Create 创建帖子
// POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	post, err := h.postService.Create(userID, req.Content, req.Images)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("帖子创建成功", zap.Uint("post_id", post.ID), zap.Uint("author_id", userID))
	response.Created(c, "发布成功", response.FilterPostInfo(post))
}

// Feed 获取全站帖子流
// GET /posts
func (h *PostHandler) Feed(c *gin.Context) {
	page, limit := parsePagination(c)

	posts, err := h.postService.Feed(page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"posts": response.FilterPostList(posts),
		"page":  page,
		"limit": limit,
	})
}

// ListByUser 获取指定用户的帖子
// GET /posts/user/:userId
func (h *PostHandler) ListByUser(c *gin.Context) {
	authorID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	posts, err := h.postService.ListByUser(authorID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"posts": response.FilterPostList(posts),
		"page":  page,
		"limit": limit,
	})
}

// Get 获取单个帖子
// GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.Get(postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FilterPostInfo(post))
}

// Update 更新帖子
// PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	post, err := h.postService.Update(postID, userID, service.PostUpdate{
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "更新成功", response.FilterPostInfo(post))
}

// Delete 删除帖子（软删除）
// DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.postService.Delete(postID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// Like 点赞/取消点赞
// POST /posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.LikeToggle(postID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FilterPostInfo(post))
}
