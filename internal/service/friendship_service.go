package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/redis"
	"social-system/pkg/websocket"

	"gorm.io/gorm"
)

// FriendshipService 好友关系服务
// 状态机：无记录 -> pending -> {accepted, declined}；accepted -> 删除（解除好友）
// 任意状态都可被 recipient 改为 blocked；blocked 没有定义出边
// 注意：Respond 不做状态转移合法性校验（保留原始语义，详见DESIGN.md）
type FriendshipService struct {
	friendRepo *repository.FriendshipRepository
	userRepo   *repository.UserRepository
}

// NewFriendshipService 创建FriendshipService实例
func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{friendRepo: friendRepo, userRepo: userRepo}
}

// FriendEntry 好友列表条目
type FriendEntry struct {
	FriendshipID uint
	Friend       *model.User
	Since        time.Time
}

// SendRequest 发送好友请求
// 不允许发给自己；无序对上已存在任何记录（任一方向、任一状态）则冲突
func (s *FriendshipService) SendRequest(requesterID, recipientID uint) (*model.Friendship, error) {
	if requesterID == recipientID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", ErrValidation)
	}

	if _, err := s.userRepo.GetByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipient", ErrNotFound)
		}
		return nil, err
	}

	// 双向存在性检查，不依赖有序对唯一索引
	_, err := s.friendRepo.FindBetween(requesterID, recipientID)
	if err == nil {
		return nil, fmt.Errorf("%w: friend request already exists or users are already friends", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &model.Friendship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      model.FriendshipPending,
	}
	if err := s.friendRepo.Create(f); err != nil {
		return nil, err
	}

	// 维护接收方待处理计数并推送通知
	_ = redis.IncrementPendingCount(recipientID)
	payload, _ := json.Marshal(map[string]interface{}{
		"type":          "friend.request",
		"friendship_id": f.ID,
		"from":          requesterID,
		"timestamp":     time.Now().Unix(),
	})
	websocket.GetManager().SendToUser(recipientID, payload)

	return s.friendRepo.GetByID(f.ID)
}

// Respond 处理好友请求，仅 recipient 可操作
// 接受枚举内的任意状态值，不校验转移合法性
func (s *FriendshipService) Respond(friendshipID, callerID uint, newStatus string) (*model.Friendship, error) {
	if !model.ValidFriendshipStatus(newStatus) {
		return nil, fmt.Errorf("%w: invalid friendship status %q", ErrValidation, newStatus)
	}

	f, err := s.getByID(friendshipID)
	if err != nil {
		return nil, err
	}
	if f.RecipientID != callerID {
		return nil, fmt.Errorf("%w: only the recipient can respond to this request", ErrPermissionDenied)
	}

	prevStatus := f.Status
	if err := s.friendRepo.UpdateStatus(friendshipID, model.FriendshipStatus(newStatus)); err != nil {
		return nil, err
	}

	// 待处理请求被处理掉时递减计数
	if prevStatus == model.FriendshipPending && newStatus != string(model.FriendshipPending) {
		_ = redis.DecrementPendingCount(callerID)
	}

	// 请求被接受时通知发起方
	if newStatus == string(model.FriendshipAccepted) {
		payload, _ := json.Marshal(map[string]interface{}{
			"type":          "friend.accepted",
			"friendship_id": friendshipID,
			"from":          callerID,
			"timestamp":     time.Now().Unix(),
		})
		websocket.GetManager().SendToUser(f.RequesterID, payload)
	}

	return s.friendRepo.GetByID(friendshipID)
}

// ListFriends 获取好友列表：全部已接受关系，对方一侧解析为好友
func (s *FriendshipService) ListFriends(userID uint) ([]FriendEntry, error) {
	fs, err := s.friendRepo.ListAccepted(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]FriendEntry, 0, len(fs))
	for _, f := range fs {
		friend := f.Requester
		if f.RequesterID == userID {
			friend = f.Recipient
		}
		entries = append(entries, FriendEntry{
			FriendshipID: f.ID,
			Friend:       friend,
			Since:        f.CreatedAt,
		})
	}
	return entries, nil
}

// ListPending 获取发给用户的待处理请求，最新在前
func (s *FriendshipService) ListPending(userID uint) ([]*model.Friendship, error) {
	return s.friendRepo.ListPendingForRecipient(userID)
}

// ListSent 获取用户发出的待处理请求，最新在前
func (s *FriendshipService) ListSent(userID uint) ([]*model.Friendship, error) {
	return s.friendRepo.ListSentByRequester(userID)
}

// PendingCount 待处理请求数，优先读Redis计数，未命中回源数据库并同步
func (s *FriendshipService) PendingCount(userID uint) (int64, error) {
	if count, err := redis.GetPendingCount(userID); err == nil && count >= 0 {
		return count, nil
	}

	dbCount, err := s.friendRepo.CountPendingForRecipient(userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetPendingCount(userID, dbCount)
	return dbCount, nil
}

// Remove 删除好友关系，双方任一均可，且不限当前状态
func (s *FriendshipService) Remove(friendshipID, callerID uint) error {
	f, err := s.getByID(friendshipID)
	if err != nil {
		return err
	}
	if f.RequesterID != callerID && f.RecipientID != callerID {
		return fmt.Errorf("%w: you are not part of this friendship", ErrPermissionDenied)
	}

	if err := s.friendRepo.Delete(friendshipID); err != nil {
		return err
	}

	// 删除的是待处理请求时同步递减接收方计数
	if f.Status == model.FriendshipPending {
		_ = redis.DecrementPendingCount(f.RecipientID)
	}
	return nil
}

// Status 查询与另一用户的关系状态
// 无记录时 can_send_request 为 true；存在记录时无论方向均为 false
func (s *FriendshipService) Status(userID, otherID uint) (string, bool, error) {
	f, err := s.friendRepo.FindBetween(userID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "none", true, nil
		}
		return "", false, err
	}
	return string(f.Status), false, nil
}

func (s *FriendshipService) getByID(friendshipID uint) (*model.Friendship, error) {
	f, err := s.friendRepo.GetByID(friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: friendship", ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}
