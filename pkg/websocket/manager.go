package websocket

import (
	"sync"

	"social-system/pkg/redis"

	"github.com/gorilla/websocket"
)

// Client 代表一个WebSocket连接的用户
// UserID: 用户ID
// Conn: WebSocket连接
// Send: 发送通知的通道

type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager 管理所有在线用户的WebSocket连接
// 并发安全，离线通知暂存到Redis

type Manager struct {
	clients map[uint]*Client // 在线用户
	lock    sync.RWMutex
}

var manager = &Manager{
	clients: make(map[uint]*Client),
}

// GetManager 获取全局WebSocket管理器
func GetManager() *Manager {
	return manager
}

// AddClient 添加新连接
func (m *Manager) AddClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clients[userID] = client

	// 推送Redis中的离线通知
	go m.pushOfflineNotifications(userID, client)
}

// RemoveClient 移除连接
func (m *Manager) RemoveClient(userID uint) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// SendToUser 推送通知给指定用户
// 若用户不在线则暂存到Redis离线通知
func (m *Manager) SendToUser(userID uint, payload []byte) {
	m.lock.RLock()
	client, ok := m.clients[userID]
	m.lock.RUnlock()
	if ok {
		// 在线，直接推送
		select {
		case client.Send <- payload:
		default:
			// 发送失败，可能连接已断开
		}
	} else {
		// 不在线，暂存到Redis
		go func() {
			_ = redis.AddOfflineNotification(userID, payload)
		}()
	}
}

// IsOnline 判断用户是否有活跃连接
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// OnlineCount 当前连接数
func (m *Manager) OnlineCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.clients)
}

// pushOfflineNotifications 上线后补推离线通知
func (m *Manager) pushOfflineNotifications(userID uint, client *Client) {
	payloads, err := redis.GetOfflineNotifications(userID, redis.MaxOfflineNotify)
	if err != nil || len(payloads) == 0 {
		return
	}

	// 列表头部是最新的，倒序推送保持时间顺序
	for i := len(payloads) - 1; i >= 0; i-- {
		select {
		case client.Send <- payloads[i]:
		default:
			return
		}
	}

	_ = redis.ClearOfflineNotifications(userID)
}
