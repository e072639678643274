package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"social-system/internal/model"
)

// 帖子首页缓存相关常量
const (
	FeedCacheKey   = "sns:feed:first_page" // 全站首页（第一页）缓存key
	FeedCacheTTL   = 60 * time.Second      // 首页缓存过期时间
	MaxCachedPosts = 50                    // 首页缓存最大条数
)

// CacheFeedFirstPage 缓存首页帖子列表
func CacheFeedFirstPage(posts []*model.Post) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	if len(posts) > MaxCachedPosts {
		posts = posts[:MaxCachedPosts]
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("序列化首页缓存失败: %w", err)
	}

	if err := Set(FeedCacheKey, data, FeedCacheTTL); err != nil {
		return fmt.Errorf("写入首页缓存失败: %w", err)
	}

	return nil
}

// GetCachedFeedFirstPage 读取首页帖子缓存
func GetCachedFeedFirstPage() ([]*model.Post, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	data, err := Get(FeedCacheKey)
	if err != nil {
		return nil, fmt.Errorf("读取首页缓存失败: %w", err)
	}

	var posts []*model.Post
	if err := json.Unmarshal([]byte(data), &posts); err != nil {
		return nil, fmt.Errorf("反序列化首页缓存失败: %w", err)
	}

	return posts, nil
}

// InvalidateFeedCache 帖子发生变更后使首页缓存失效
func InvalidateFeedCache() error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return Del(FeedCacheKey)
}
