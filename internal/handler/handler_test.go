package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"social-system/config"
	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dir, err := os.MkdirTemp("", "handler-test-logs")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(config.LogConfig{
		Level:    "error",
		Filename: filepath.Join(dir, "test.log"),
		MaxSize:  1,
	})
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// newTestRouter 在内存SQLite上组装完整的HTTP栈
func newTestRouter(t *testing.T) (*gin.Engine, *jwt.JWTService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
		&model.CommentLike{},
		&model.Friendship{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	jwtSvc := jwt.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "social-system-test",
	})

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)

	userHandler := NewUserHandler(service.NewUserService(userRepo, jwtSvc))
	postHandler := NewPostHandler(service.NewPostService(postRepo))
	friendHandler := NewFriendshipHandler(service.NewFriendshipService(friendRepo, userRepo))

	router := gin.New()
	auth := jwtSvc.AuthMiddleware()

	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)

	posts := router.Group("/posts")
	{
		posts.POST("", auth, postHandler.Create)
		posts.GET("", postHandler.Feed)
		posts.GET("/:id", postHandler.Get)
		posts.PATCH("/:id", auth, postHandler.Update)
		posts.DELETE("/:id", auth, postHandler.Delete)
		posts.POST("/:id/like", auth, postHandler.Like)
	}

	friends := router.Group("/friends")
	friends.Use(auth)
	{
		friends.POST("/request", friendHandler.SendRequest)
		friends.PATCH("/request/:id", friendHandler.Respond)
		friends.GET("", friendHandler.ListFriends)
	}

	return router, jwtSvc
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser 通过HTTP注册用户，返回用户ID与token
func registerUser(t *testing.T, router *gin.Engine, email string) (uint, string) {
	t.Helper()

	w := doJSON(t, router, "POST", "/register", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			User struct {
				ID uint `json:"id"`
			} `json:"user"`
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Data.User.ID, resp.Data.AccessToken
}

func TestRegisterStatusCodes(t *testing.T) {
	router, _ := newTestRouter(t)

	// 首次注册 201
	w := doJSON(t, router, "POST", "/register", "", gin.H{"email": "a@example.com", "password": "secret123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201", w.Code)
	}

	// 重复注册 409
	w = doJSON(t, router, "POST", "/register", "", gin.H{"email": "a@example.com", "password": "secret123"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409", w.Code)
	}

	// 请求体校验失败 400
	w = doJSON(t, router, "POST", "/register", "", gin.H{"email": "not-an-email", "password": "secret123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid email: status = %d, want 400", w.Code)
	}
}

func TestLoginStatusCodes(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "a@example.com")

	w := doJSON(t, router, "POST", "/login", "", gin.H{"email": "a@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, want 200", w.Code)
	}

	w = doJSON(t, router, "POST", "/login", "", gin.H{"email": "a@example.com", "password": "wrong-password"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d, want 401", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "POST", "/posts", "", gin.H{"content": "hello"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing auth header: status = %d, want 401", w.Code)
	}

	w = doJSON(t, router, "POST", "/posts", "garbage-token", gin.H{"content": "hello"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", w.Code)
	}
}

func TestPostStatusCodes(t *testing.T) {
	router, _ := newTestRouter(t)
	_, authorToken := registerUser(t, router, "author@example.com")
	_, strangerToken := registerUser(t, router, "stranger@example.com")

	// 发帖 201
	w := doJSON(t, router, "POST", "/posts", authorToken, gin.H{"content": "hello world"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	// 不存在的帖子 404
	w = doJSON(t, router, "GET", "/posts/99999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing post: status = %d, want 404", w.Code)
	}

	// 非作者修改 403
	path := fmt.Sprintf("/posts/%d", created.Data.ID)
	w = doJSON(t, router, "PATCH", path, strangerToken, gin.H{"content": "hijacked"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger update: status = %d, want 403", w.Code)
	}

	// 作者修改 200
	w = doJSON(t, router, "PATCH", path, authorToken, gin.H{"content": "edited"})
	if w.Code != http.StatusOK {
		t.Fatalf("author update: status = %d, want 200", w.Code)
	}

	// 点赞 200
	w = doJSON(t, router, "POST", path+"/like", strangerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("like: status = %d, want 200", w.Code)
	}

	// 非法路径参数 400
	w = doJSON(t, router, "GET", "/posts/not-a-number", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", w.Code)
	}
}

func TestFriendRequestStatusCodes(t *testing.T) {
	router, _ := newTestRouter(t)
	aliceID, aliceToken := registerUser(t, router, "alice@example.com")
	bobID, bobToken := registerUser(t, router, "bob@example.com")

	// 发送请求 201
	w := doJSON(t, router, "POST", "/friends/request", aliceToken, gin.H{"recipient_id": bobID})
	if w.Code != http.StatusCreated {
		t.Fatalf("send request: status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// 反方向重复 409
	w = doJSON(t, router, "POST", "/friends/request", bobToken, gin.H{"recipient_id": aliceID})
	if w.Code != http.StatusConflict {
		t.Fatalf("reverse duplicate: status = %d, want 409", w.Code)
	}

	// 发起方处理自己的请求 403
	path := fmt.Sprintf("/friends/request/%d", created.Data.ID)
	w = doJSON(t, router, "PATCH", path, aliceToken, gin.H{"status": "accepted"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("requester respond: status = %d, want 403", w.Code)
	}

	// 接收方接受 200
	w = doJSON(t, router, "PATCH", path, bobToken, gin.H{"status": "accepted"})
	if w.Code != http.StatusOK {
		t.Fatalf("accept: status = %d, want 200", w.Code)
	}

	// 好友列表可见
	w = doJSON(t, router, "GET", "/friends", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list friends: status = %d, want 200", w.Code)
	}
	var friends struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &friends); err != nil {
		t.Fatalf("decode friends: %v", err)
	}
	if friends.Data.Count != 1 {
		t.Fatalf("friend count = %d, want 1", friends.Data.Count)
	}
}
