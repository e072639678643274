package websocket

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"social-system/config"
	"social-system/internal/repository"
	dbPkg "social-system/pkg/db"
	"social-system/pkg/jwt"
	"social-system/pkg/redis"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许跨域
	},
}

// WsHandler Gin路由处理函数
// 通过 ?token= 或 Sec-WebSocket-Protocol 携带JWT完成认证
func WsHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
	}
	if token == "" {
		response.Unauthorized(c, "缺少token")
		return
	}

	jwtCfg := c.MustGet("jwt_config").(config.JWTConfig) // 在main.go注入
	jwtSvc := jwt.NewJWTService(jwtCfg)
	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "token无效或已过期")
		return
	}
	userID, _ := strconv.ParseUint(claims.Subject, 10, 32)
	if userID == 0 {
		response.Unauthorized(c, "token无效")
		return
	}

	// 回显子协议，避免客户端提示 "Server sent no subprotocol"
	respHeader := http.Header{}
	if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
		respHeader.Set("Sec-WebSocket-Protocol", protocol)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		return
	}

	client := &Client{
		UserID: uint(userID),
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	GetManager().AddClient(uint(userID), client)

	// 连接建立后标记用户在线
	email := claims.Email()
	if db := dbPkg.GetDB(); db != nil {
		userRepo := repository.NewUserRepository(db)
		_ = userRepo.UpdateStatus(uint(userID), "online")
	}
	_ = redis.SetUserPresence(uint(userID), email, "online")

	defer func() {
		GetManager().RemoveClient(uint(userID))

		// 连接关闭后标记用户离线
		if db := dbPkg.GetDB(); db != nil {
			userRepo := repository.NewUserRepository(db)
			_ = userRepo.UpdateStatus(uint(userID), "offline")
		}
		_ = redis.SetUserPresence(uint(userID), email, "offline")
	}()

	// 从上下文读取心跳配置
	wsCfg := c.MustGet("ws_config").(config.WebSocketConfig)

	// 写协程 + 定时发送ping心跳
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(wsCfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				_ = conn.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					close(done)
					return
				}
			}
		}
	}()

	// 读协程（接收心跳）。若超时未收到任何读事件则断开
	_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	conn.SetPongHandler(func(appData string) error {
		return conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	})

	for {
		select {
		case <-done:
			_ = conn.Close()
			return
		default:
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			_ = conn.Close()
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	}
}
