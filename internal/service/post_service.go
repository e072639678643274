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

// PostService 帖子服务
type PostService struct {
	postRepo *repository.PostRepository
}

// NewPostService 创建PostService实例
func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// PostUpdate 帖子部分更新参数，nil字段不更新
type PostUpdate struct {
	Content *string
	Images  *[]string
}

// Create 创建帖子，作者为当前调用者
func (s *PostService) Create(authorID uint, content string, images []string) (*model.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  content,
		Images:   images,
		IsActive: true,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	// 帖子变更后使首页缓存失效
	_ = redis.InvalidateFeedCache()

	return s.postRepo.GetByID(post.ID)
}

// Feed 分页获取全站有效帖子，按创建时间倒序
// 第一页优先走Redis缓存，未命中回源并异步回填
func (s *PostService) Feed(page, limit int) ([]*model.Post, error) {
	limit, offset := normalizePagination(page, limit)

	if offset == 0 && limit <= redis.MaxCachedPosts {
		if cached, err := redis.GetCachedFeedFirstPage(); err == nil && len(cached) >= limit {
			return cached[:limit], nil
		}

		posts, err := s.postRepo.ListActive(limit, offset)
		if err != nil {
			return nil, err
		}
		// 异步回填缓存
		go func() {
			_ = redis.CacheFeedFirstPage(posts)
		}()
		return posts, nil
	}

	return s.postRepo.ListActive(limit, offset)
}

// ListByUser 分页获取指定用户的有效帖子
func (s *PostService) ListByUser(authorID uint, page, limit int) ([]*model.Post, error) {
	limit, offset := normalizePagination(page, limit)
	return s.postRepo.ListByAuthor(authorID, limit, offset)
}

// Get 根据ID获取帖子（软删除的记录仍可按ID读取）
func (s *PostService) Get(postID uint) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post", ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}

// Update 部分更新帖子，仅作者可操作
func (s *PostService) Update(postID, callerID uint, upd PostUpdate) (*model.Post, error) {
	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, fmt.Errorf("%w: only the author can update this post", ErrPermissionDenied)
	}

	fields := map[string]interface{}{}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.Images != nil {
		data, err := json.Marshal(*upd.Images)
		if err != nil {
			return nil, err
		}
		fields["images"] = string(data)
	}

	if len(fields) > 0 {
		if err := s.postRepo.UpdateFields(postID, fields); err != nil {
			return nil, err
		}
		_ = redis.InvalidateFeedCache()
	}
	return s.postRepo.GetByID(postID)
}

// Delete 软删除帖子，仅作者可操作；记录保留
func (s *PostService) Delete(postID, callerID uint) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return fmt.Errorf("%w: only the author can delete this post", ErrPermissionDenied)
	}

	if err := s.postRepo.Deactivate(postID); err != nil {
		return err
	}
	_ = redis.InvalidateFeedCache()
	return nil
}

// LikeToggle 点赞开关：再次调用即取消，点赞数始终等于点赞集合大小
func (s *PostService) LikeToggle(postID, callerID uint) (*model.Post, error) {
	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.HasLike(postID, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.ToggleLike(postID, callerID); err != nil {
		return nil, err
	}
	_ = redis.InvalidateFeedCache()

	// 新增点赞时通知作者（取消点赞不通知，自赞不通知）
	if !liked && post.AuthorID != callerID {
		payload, _ := json.Marshal(map[string]interface{}{
			"type":      "post.liked",
			"post_id":   postID,
			"from":      callerID,
			"timestamp": time.Now().Unix(),
		})
		websocket.GetManager().SendToUser(post.AuthorID, payload)
	}

	return s.postRepo.GetByID(postID)
}
