package redis

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 待处理好友请求计数相关常量
const (
	PendingCountKeyPrefix = "sns:friend:pending:" // 待处理请求计数key前缀
	PendingCountTTL       = 24 * time.Hour        // 计数过期时间
)

// IncrementPendingCount 增加用户待处理好友请求计数
func IncrementPendingCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("增加待处理请求计数失败: %w", err)
	}

	if err := client.Expire(ctx, key, PendingCountTTL).Err(); err != nil {
		return fmt.Errorf("设置待处理请求计数TTL失败: %w", err)
	}

	return nil
}

// DecrementPendingCount 减少用户待处理好友请求计数
func DecrementPendingCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	if err := client.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("减少待处理请求计数失败: %w", err)
	}

	// 计数为0或负数时直接删除key
	count, err := client.Get(ctx, key).Int64()
	if err == nil && count <= 0 {
		client.Del(ctx, key)
	}

	return nil
}

// GetPendingCount 获取用户待处理好友请求计数
// key不存在时返回-1，表示需要回源数据库
func GetPendingCount(userID uint) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	result, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return 0, fmt.Errorf("获取待处理请求计数失败: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("解析待处理请求计数失败: %w", err)
	}

	return count, nil
}

// SetPendingCount 设置用户待处理好友请求计数（回源后同步）
func SetPendingCount(userID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	if err := client.Set(ctx, key, count, PendingCountTTL).Err(); err != nil {
		return fmt.Errorf("设置待处理请求计数失败: %w", err)
	}

	return nil
}

// ResetPendingCount 重置用户待处理好友请求计数
func ResetPendingCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PendingCountKeyPrefix, userID)

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("重置待处理请求计数失败: %w", err)
	}

	return nil
}
