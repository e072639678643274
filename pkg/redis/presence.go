package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// PresenceData 在线状态数据
type PresenceData struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"` // online/offline
	LastSeen  time.Time `json:"last_seen"`
	Connected bool      `json:"connected"` // 是否有活跃连接
}

// 在线状态相关常量
const (
	PresenceKeyPrefix = "sns:presence:user:" // 用户在线状态key前缀
	OnlineUsersKey    = "sns:online:users"   // 在线用户集合key
	PresenceTTL       = 2 * time.Minute      // 在线状态TTL（2倍心跳周期）
)

// SetUserPresence 设置用户在线状态
func SetUserPresence(userID uint, email string, status string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	presence := PresenceData{
		UserID:    userID,
		Email:     email,
		Status:    status,
		LastSeen:  time.Now(),
		Connected: status == "online",
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("序列化在线状态失败: %w", err)
	}

	// 设置用户状态，带TTL
	if err := Set(key, data, PresenceTTL); err != nil {
		return fmt.Errorf("设置用户在线状态失败: %w", err)
	}

	// 更新在线用户集合
	if status == "online" {
		err = client.SAdd(ctx, OnlineUsersKey, userID).Err()
	} else {
		err = client.SRem(ctx, OnlineUsersKey, userID).Err()
	}

	if err != nil {
		return fmt.Errorf("更新在线用户集合失败: %w", err)
	}

	return nil
}

// GetUserPresence 获取用户在线状态
func GetUserPresence(userID uint) (*PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	data, err := Get(key)
	if err != nil {
		return nil, fmt.Errorf("获取用户在线状态失败: %w", err)
	}

	var presence PresenceData
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("反序列化在线状态失败: %w", err)
	}

	return &presence, nil
}

// IsUserOnline 检查用户是否在线
func IsUserOnline(userID uint) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	exists, err := Exists(key)
	if err != nil {
		return false, fmt.Errorf("检查用户在线状态失败: %w", err)
	}

	return exists > 0, nil
}

// GetOnlineUsers 获取所有在线用户ID列表
func GetOnlineUsers() ([]uint, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	members, err := client.SMembers(ctx, OnlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("获取在线用户列表失败: %w", err)
	}

	var userIDs []uint
	for _, member := range members {
		var userID uint
		if _, err := fmt.Sscanf(member, "%d", &userID); err == nil {
			userIDs = append(userIDs, userID)
		}
	}

	return userIDs, nil
}

// GetOnlineUsersWithDetails 获取在线用户详细信息
func GetOnlineUsersWithDetails() ([]PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	userIDs, err := GetOnlineUsers()
	if err != nil {
		return nil, err
	}

	var result []PresenceData
	for _, userID := range userIDs {
		presence, err := GetUserPresence(userID)
		if err != nil {
			// 状态已过期的用户跳过
			continue
		}
		result = append(result, *presence)
	}

	return result, nil
}
