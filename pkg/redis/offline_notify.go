package redis

import (
	"fmt"
	"time"
)

// 离线通知相关常量
const (
	OfflineNotifyKeyPrefix = "sns:offline:notify:" // 离线通知key前缀
	OfflineNotifyTTL       = 7 * 24 * time.Hour    // 7天过期
	MaxOfflineNotify       = 100                   // 每个用户最多保留100条
)

// AddOfflineNotification 用户不在线时暂存通知（JSON字节）
func AddOfflineNotification(userID uint, payload []byte) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", OfflineNotifyKeyPrefix, userID)

	// LPUSH到列表头部，最新的通知在前面
	if err := client.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("暂存离线通知失败: %w", err)
	}

	if err := client.Expire(ctx, key, OfflineNotifyTTL).Err(); err != nil {
		return fmt.Errorf("设置离线通知TTL失败: %w", err)
	}

	// 限制离线通知数量
	if err := client.LTrim(ctx, key, 0, MaxOfflineNotify-1).Err(); err != nil {
		return fmt.Errorf("限制离线通知数量失败: %w", err)
	}

	return nil
}

// GetOfflineNotifications 获取用户的离线通知（最新在前）
func GetOfflineNotifications(userID uint, limit int) ([][]byte, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", OfflineNotifyKeyPrefix, userID)

	results, err := client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取离线通知失败: %w", err)
	}

	payloads := make([][]byte, 0, len(results))
	for _, r := range results {
		payloads = append(payloads, []byte(r))
	}

	return payloads, nil
}

// ClearOfflineNotifications 清空用户的离线通知
func ClearOfflineNotifications(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", OfflineNotifyKeyPrefix, userID)

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("清空离线通知失败: %w", err)
	}

	return nil
}
