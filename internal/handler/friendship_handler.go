package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FriendshipHandler 好友关系HTTP处理器
type FriendshipHandler struct {
	friendshipService *service.FriendshipService
}

// NewFriendshipHandler 创建FriendshipHandler实例
func NewFriendshipHandler(friendshipService *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// SendRequestRequest 发送好友请求
type SendRequestRequest struct {
	RecipientID uint `json:"recipient_id" binding:"required"`
}

// RespondRequest 处理好友请求
type RespondRequest struct {
	Status string `json:"status" binding:"required"`
}

// SendRequest 发送好友请求
// POST /friends/request
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	f, err := h.friendshipService.SendRequest(userID, req.RecipientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("好友请求已发送", zap.Uint("requester_id", userID), zap.Uint("recipient_id", req.RecipientID))
	response.Created(c, "好友请求已发送", response.FilterFriendshipInfo(f))
}

// Respond 处理好友请求（仅接收方）
// PATCH /friends/request/:id
func (h *FriendshipHandler) Respond(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	friendshipID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	f, err := h.friendshipService.Respond(friendshipID, userID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "已处理好友请求", response.FilterFriendshipInfo(f))
}

// ListFriends 获取好友列表
// GET /friends
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	entries, err := h.friendshipService.ListFriends(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := make([]response.FriendEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, response.FriendEntry{
			FriendshipID: e.FriendshipID,
			Friend:       response.FilterAuthorInfo(e.Friend),
			Since:        e.Since,
		})
	}
	response.Success(c, gin.H{"friends": result, "count": len(result)})
}

// ListPending 获取收到的待处理请求
// GET /friends/requests/pending
func (h *FriendshipHandler) ListPending(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	fs, err := h.friendshipService.ListPending(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	count, err := h.friendshipService.PendingCount(userID)
	if err != nil {
		count = int64(len(fs))
	}
	response.Success(c, gin.H{
		"requests": response.FilterFriendshipList(fs),
		"count":    count,
	})
}

// ListSent 获取发出的待处理请求
// GET /friends/requests/sent
func (h *FriendshipHandler) ListSent(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}

	fs, err := h.friendshipService.ListSent(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"requests": response.FilterFriendshipList(fs)})
}

// Status 查询与某个用户的关系状态
// GET /friends/status/:userId
func (h *FriendshipHandler) Status(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	otherID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	status, canSend, err := h.friendshipService.Status(userID, otherID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FriendshipStatusInfo{
		Status:         status,
		CanSendRequest: canSend,
	})
}

// Remove 删除好友关系（任一方均可）
// DELETE /friends/:friendshipId
func (h *FriendshipHandler) Remove(c *gin.Context) {
	userID := jwt.GetUserIDUint(c)
	if userID == 0 {
		response.Unauthorized(c, "未授权")
		return
	}
	friendshipID, ok := parseUintParam(c, "friendshipId")
	if !ok {
		return
	}

	if err := h.friendshipService.Remove(friendshipID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "已删除好友关系", nil)
}
