package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentHandler 评论HTTP处理器
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler 创建CommentHandler实例
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	PostID  uint   `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdateCommentRequest 评论更新请求
type UpdateCommentRequest struct {
	Content *string `json:"content"`
}

// Create 创建评论
// POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	comment, err := h.commentService.Create(req.PostID, userID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("评论创建成功", zap.Uint("comment_id", comment.ID), zap.Uint("post_id", req.PostID))
	response.Created(c, "评论成功", response.FilterCommentInfo(comment))
}

// ListByPost 获取帖子下的评论
// GET /comments/post/:postId
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := parseUintParam(c, "postId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	comments, err := h.commentService.ListByPost(postID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"comments": response.FilterCommentList(comments),
		"page":     page,
		"limit":    limit,
	})
}

// Get 获取单条评论
// GET /comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FilterCommentInfo(comment))
}

// Update 更新评论
// PATCH /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	comment, err := h.commentService.Update(commentID, userID, service.CommentUpdate{
		Content: req.Content,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "更新成功", response.FilterCommentInfo(comment))
}

// Delete 删除评论（软删除，父帖计数同步递减）
// DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(commentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// Like 评论点赞/取消点赞
// POST /comments/:id/like
func (h *CommentHandler) Like(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.LikeToggle(commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FilterCommentInfo(comment))
}
