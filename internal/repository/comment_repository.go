package repository

import (
	"errors"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// CommentRepository 评论数据仓储
// 评论创建/删除与父帖计数增减在同一事务内完成
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建CommentRepository实例
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateWithCounter 创建评论并在同一事务内递增父帖评论计数
func (r *CommentRepository) CreateWithCounter(comment *model.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

// DeactivateWithCounter 软删除评论并在同一事务内递减父帖评论计数
// 计数通过 CASE 表达式钳制在零以上，避免反复删除导致负数
func (r *CommentRepository) DeactivateWithCounter(comment *model.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Comment{}).Where("id = ?", comment.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count",
				gorm.Expr("CASE WHEN comments_count > 0 THEN comments_count - 1 ELSE 0 END")).Error
	})
}

// GetByID 根据ID获取评论（不区分是否有效）
func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost 分页获取帖子下的有效评论，按创建时间倒序
func (r *CommentRepository) ListByPost(postID uint, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("post_id = ? AND is_active = ?", postID, true).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// UpdateFields 按字段部分更新评论
func (r *CommentRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Updates(fields).Error
}

// ToggleLike 评论点赞开关，计数在事务内按行数重算
func (r *CommentRepository) ToggleLike(commentID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var like model.CommentLike
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.CommentLike{CommentID: commentID, UserID: userID}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var count int64
		if err := tx.Model(&model.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", count).Error
	})
}

// CountLikes 评论点赞数
func (r *CommentRepository) CountLikes(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
