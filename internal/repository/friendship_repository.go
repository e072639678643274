package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// FriendshipRepository 好友关系数据仓储
type FriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建FriendshipRepository实例
func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// Create 创建好友请求
func (r *FriendshipRepository) Create(f *model.Friendship) error {
	return r.db.Create(f).Error
}

// GetByID 根据ID获取好友关系（双方投影一并加载）
func (r *FriendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Preload("Requester").Preload("Recipient").First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindBetween 双向查询两个用户之间的关系记录
// 无序对唯一性依赖该查询，而不只是有序对上的唯一索引
func (r *FriendshipRepository) FindBetween(userID, otherID uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		userID, otherID, otherID, userID,
	).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListAccepted 获取用户的全部已接受关系（作为任一方）
func (r *FriendshipRepository) ListAccepted(userID uint) ([]*model.Friendship, error) {
	var fs []*model.Friendship
	err := r.db.Where(
		"(requester_id = ? OR recipient_id = ?) AND status = ?",
		userID, userID, model.FriendshipAccepted,
	).
		Preload("Requester").
		Preload("Recipient").
		Find(&fs).Error
	return fs, err
}

// ListPendingForRecipient 获取发给用户的待处理请求，最新在前
func (r *FriendshipRepository) ListPendingForRecipient(userID uint) ([]*model.Friendship, error) {
	var fs []*model.Friendship
	err := r.db.Where("recipient_id = ? AND status = ?", userID, model.FriendshipPending).
		Preload("Requester").
		Preload("Recipient").
		Order("created_at DESC").
		Find(&fs).Error
	return fs, err
}

// ListSentByRequester 获取用户发出的待处理请求，最新在前
func (r *FriendshipRepository) ListSentByRequester(userID uint) ([]*model.Friendship, error) {
	var fs []*model.Friendship
	err := r.db.Where("requester_id = ? AND status = ?", userID, model.FriendshipPending).
		Preload("Requester").
		Preload("Recipient").
		Order("created_at DESC").
		Find(&fs).Error
	return fs, err
}

// UpdateStatus 更新关系状态
func (r *FriendshipRepository) UpdateStatus(id uint, status model.FriendshipStatus) error {
	return r.db.Model(&model.Friendship{}).Where("id = ?", id).
		Update("status", status).Error
}

// Delete 删除好友关系（物理删除）
func (r *FriendshipRepository) Delete(id uint) error {
	return r.db.Delete(&model.Friendship{}, id).Error
}

// CountPendingForRecipient 统计发给用户的待处理请求数
func (r *FriendshipRepository) CountPendingForRecipient(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("recipient_id = ? AND status = ?", userID, model.FriendshipPending).
		Count(&count).Error
	return count, err
}
