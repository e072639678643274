package repository

import (
	"errors"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// PostRepository 帖子数据仓储
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建PostRepository实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建帖子
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据ID获取帖子（不区分是否有效，作者投影一并加载）
func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListActive 分页获取有效帖子，按创建时间倒序
func (r *PostRepository) ListActive(limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Where("is_active = ?", true).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// ListByAuthor 分页获取指定作者的有效帖子
func (r *PostRepository) ListByAuthor(authorID uint, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Where("author_id = ? AND is_active = ?", authorID, true).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// UpdateFields 按字段部分更新帖子
func (r *PostRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error
}

// Deactivate 软删除：清除有效标记，记录保留
func (r *PostRepository) Deactivate(id uint) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// ToggleLike 点赞开关：已点赞则取消，未点赞则添加
// 点赞数在同一事务内按 post_like 行数重算，保证集合与计数一致
func (r *PostRepository) ToggleLike(postID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var like model.PostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var count int64
		if err := tx.Model(&model.PostLike{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", count).Error
	})
}

// HasLike 用户是否已点赞该帖子
func (r *PostRepository) HasLike(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountLikes 帖子点赞数（以 post_like 行数为准）
func (r *PostRepository) CountLikes(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
