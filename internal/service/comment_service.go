package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/websocket"

	"gorm.io/gorm"
)

// CommentService 评论服务
// 依赖帖子仓储做父帖存在性检查与计数维护
type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
}

// NewCommentService 创建CommentService实例
func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CommentUpdate 评论部分更新参数
type CommentUpdate struct {
	Content *string
}

// Create 创建评论
// 父帖必须存在（只查存在性，不要求仍然有效）；评论插入与父帖计数递增在同一事务内
func (s *CommentService) Create(postID, authorID uint, content string) (*model.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post", ErrNotFound)
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
		IsActive: true,
	}
	if err := s.commentRepo.CreateWithCounter(comment); err != nil {
		return nil, err
	}

	// 通知帖子作者（自己评论自己的帖子不通知）
	if post.AuthorID != authorID {
		payload, _ := json.Marshal(map[string]interface{}{
			"type":       "comment.created",
			"post_id":    postID,
			"comment_id": comment.ID,
			"from":       authorID,
			"timestamp":  time.Now().Unix(),
		})
		websocket.GetManager().SendToUser(post.AuthorID, payload)
	}

	return s.commentRepo.GetByID(comment.ID)
}

// ListByPost 分页获取帖子下的有效评论
func (s *CommentService) ListByPost(postID uint, page, limit int) ([]*model.Comment, error) {
	limit, offset := normalizePagination(page, limit)
	return s.commentRepo.ListByPost(postID, limit, offset)
}

// Get 根据ID获取评论
func (s *CommentService) Get(commentID uint) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment", ErrNotFound)
		}
		return nil, err
	}
	return comment, nil
}

// Update 部分更新评论，仅作者可操作
func (s *CommentService) Update(commentID, callerID uint, upd CommentUpdate) (*model.Comment, error) {
	comment, err := s.Get(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, fmt.Errorf("%w: only the author can update this comment", ErrPermissionDenied)
	}

	fields := map[string]interface{}{}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if len(fields) > 0 {
		if err := s.commentRepo.UpdateFields(commentID, fields); err != nil {
			return nil, err
		}
	}
	return s.commentRepo.GetByID(commentID)
}

// Delete 软删除评论，仅作者可操作
// 已删除的评论不再重复删除，避免父帖计数被重复递减
func (s *CommentService) Delete(commentID, callerID uint) error {
	comment, err := s.Get(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return fmt.Errorf("%w: only the author can delete this comment", ErrPermissionDenied)
	}
	if !comment.IsActive {
		return nil
	}

	return s.commentRepo.DeactivateWithCounter(comment)
}

// LikeToggle 评论点赞开关
func (s *CommentService) LikeToggle(commentID, callerID uint) (*model.Comment, error) {
	if _, err := s.Get(commentID); err != nil {
		return nil, err
	}

	if err := s.commentRepo.ToggleLike(commentID, callerID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(commentID)
}
