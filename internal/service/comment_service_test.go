package service

import (
	"errors"
	"fmt"
	"testing"

	"social-system/internal/model"
	"social-system/internal/repository"

	"gorm.io/gorm"
)

func newCommentService(t *testing.T) (*CommentService, *PostService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	postRepo := repository.NewPostRepository(db)
	return NewCommentService(repository.NewCommentRepository(db), postRepo),
		NewPostService(postRepo), db
}

func TestCommentCounter(t *testing.T) {
	svc, postSvc, db := newCommentService(t)
	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author.ID, "discuss")

	var comments []*model.Comment
	for i := 0; i < 3; i++ {
		cm, err := svc.Create(post.ID, commenter.ID, fmt.Sprintf("comment %d", i))
		if err != nil {
			t.Fatalf("create comment %d: %v", i, err)
		}
		comments = append(comments, cm)
	}

	got, err := postSvc.Get(post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.CommentsCount != 3 {
		t.Fatalf("comments_count = %d, want 3", got.CommentsCount)
	}

	if err := svc.Delete(comments[0].ID, commenter.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	got, _ = postSvc.Get(post.ID)
	if got.CommentsCount != 2 {
		t.Fatalf("comments_count after delete = %d, want 2", got.CommentsCount)
	}

	// 重复删除不再递减计数
	if err := svc.Delete(comments[0].ID, commenter.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	got, _ = postSvc.Get(post.ID)
	if got.CommentsCount != 2 {
		t.Fatalf("comments_count after repeat delete = %d, want 2", got.CommentsCount)
	}
}

func TestCommentOnMissingPost(t *testing.T) {
	svc, _, db := newCommentService(t)
	commenter := createTestUser(t, db, "commenter")

	_, err := svc.Create(9999, commenter.ID, "into the void")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// 失败的创建不得留下评论记录
	var count int64
	if err := db.Model(&model.Comment{}).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 0 {
		t.Fatalf("orphan comments persisted: %d", count)
	}
}

func TestCommentValidationAndOwnership(t *testing.T) {
	svc, _, db := newCommentService(t)
	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	post := createTestPost(t, db, author.ID, "topic")

	if _, err := svc.Create(post.ID, author.ID, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty content, got %v", err)
	}

	cm, err := svc.Create(post.ID, author.ID, "mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	content := "not yours"
	if _, err := svc.Update(cm.ID, stranger.ID, CommentUpdate{Content: &content}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on update, got %v", err)
	}
	if err := svc.Delete(cm.ID, stranger.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on delete, got %v", err)
	}
}

func TestCommentLikeToggle(t *testing.T) {
	svc, _, db := newCommentService(t)
	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author.ID, "topic")

	cm, err := svc.Create(post.ID, author.ID, "like this comment")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	liked, err := svc.LikeToggle(cm.ID, liker.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if liked.LikesCount != 1 {
		t.Fatalf("likes_count = %d, want 1", liked.LikesCount)
	}

	unliked, err := svc.LikeToggle(cm.ID, liker.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if unliked.LikesCount != 0 {
		t.Fatalf("likes_count = %d, want 0", unliked.LikesCount)
	}
}

func TestCommentListByPost(t *testing.T) {
	svc, _, db := newCommentService(t)
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "topic")
	other := createTestPost(t, db, author.ID, "other topic")

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(post.ID, author.ID, fmt.Sprintf("c%d", i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(other.ID, author.ID, "elsewhere"); err != nil {
		t.Fatalf("create on other post: %v", err)
	}

	comments, err := svc.ListByPost(post.ID, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("len = %d, want 3", len(comments))
	}
	for _, cm := range comments {
		if cm.PostID != post.ID {
			t.Fatalf("comment %d belongs to post %d", cm.ID, cm.PostID)
		}
	}
}
