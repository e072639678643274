package service

import (
	"fmt"
	"testing"
	"time"

	"social-system/config"
	"social-system/internal/model"
	"social-system/pkg/jwt"
	"social-system/pkg/password"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// newTestDB 打开内存SQLite并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// 内存库只允许单连接，避免连接池拿到空库
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
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "social-system-test",
	})
}

var testUserSeq int

// createTestUser 直接写库创建用户，密码固定为 password123
func createTestUser(t *testing.T, db *gorm.DB, firstName string) *model.User {
	t.Helper()

	hash, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	testUserSeq++
	u := &model.User{
		Email:        fmt.Sprintf("%s%d@example.com", firstName, testUserSeq),
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     "Tester",
		IsActive:     true,
		Status:       "offline",
		LastSeen:     time.Now(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

// createTestPost 直接写库创建帖子
func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content string) *model.Post {
	t.Helper()

	p := &model.Post{
		AuthorID: authorID,
		Content:  content,
		IsActive: true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}
