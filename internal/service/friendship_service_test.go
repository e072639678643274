package service

import (
	"errors"
	"testing"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"

	"gorm.io/gorm"
)

func newFriendshipService(t *testing.T) (*FriendshipService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewFriendshipService(
		repository.NewFriendshipRepository(db),
		repository.NewUserRepository(db),
	), db
}

func TestSendRequestValidation(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")

	if _, err := svc.SendRequest(alice.ID, alice.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("self request: expected ErrValidation, got %v", err)
	}
	if _, err := svc.SendRequest(alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing recipient: expected ErrNotFound, got %v", err)
	}
}

func TestSendRequestBidirectionalConflict(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	f, err := svc.SendRequest(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if f.Status != model.FriendshipPending {
		t.Fatalf("status = %s, want pending", f.Status)
	}

	// 同方向重复
	if _, err := svc.SendRequest(alice.ID, bob.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("same direction: expected ErrConflict, got %v", err)
	}
	// 反方向也必须冲突
	if _, err := svc.SendRequest(bob.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("reverse direction: expected ErrConflict, got %v", err)
	}
}

func TestRespondAuthorization(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	f, err := svc.SendRequest(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	// 发起方不能处理自己的请求
	if _, err := svc.Respond(f.ID, alice.ID, string(model.FriendshipAccepted)); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("requester respond: expected ErrPermissionDenied, got %v", err)
	}

	// 非法状态值
	if _, err := svc.Respond(f.ID, bob.ID, "besties"); !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid status: expected ErrValidation, got %v", err)
	}

	accepted, err := svc.Respond(f.ID, bob.ID, string(model.FriendshipAccepted))
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != model.FriendshipAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}
}

func TestListFriendsBothSides(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	f, err := svc.SendRequest(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Respond(f.ID, bob.ID, string(model.FriendshipAccepted)); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// 双方都能看到对方，好友解析为另一侧用户
	aliceFriends, err := svc.ListFriends(alice.ID)
	if err != nil {
		t.Fatalf("alice friends: %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].Friend.ID != bob.ID {
		t.Fatalf("alice friends = %+v, want bob", aliceFriends)
	}

	bobFriends, err := svc.ListFriends(bob.ID)
	if err != nil {
		t.Fatalf("bob friends: %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].Friend.ID != alice.ID {
		t.Fatalf("bob friends = %+v, want alice", bobFriends)
	}
}

func TestDeclinedNotInFriendList(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	f, err := svc.SendRequest(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Respond(f.ID, bob.ID, string(model.FriendshipDeclined)); err != nil {
		t.Fatalf("decline: %v", err)
	}

	friends, err := svc.ListFriends(alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("declined request leaked into friend list: %+v", friends)
	}

	// 记录仍然存在，双方都不能再次发起
	if _, err := svc.SendRequest(alice.ID, bob.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("resend after decline: expected ErrConflict, got %v", err)
	}
}

func TestPendingListsAndCount(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	if _, err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("alice->bob: %v", err)
	}
	time.Sleep(time.Millisecond) // 保证创建时间严格递增
	if _, err := svc.SendRequest(carol.ID, bob.ID); err != nil {
		t.Fatalf("carol->bob: %v", err)
	}

	pending, err := svc.ListPending(bob.ID)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending len = %d, want 2", len(pending))
	}
	// 最新在前
	if pending[0].RequesterID != carol.ID {
		t.Fatalf("pending order wrong: first requester = %d, want %d", pending[0].RequesterID, carol.ID)
	}

	sent, err := svc.ListSent(alice.ID)
	if err != nil {
		t.Fatalf("sent: %v", err)
	}
	if len(sent) != 1 || sent[0].RecipientID != bob.ID {
		t.Fatalf("sent = %+v, want one request to bob", sent)
	}

	// Redis不可用时回源数据库
	count, err := svc.PendingCount(bob.ID)
	if err != nil {
		t.Fatalf("pending count: %v", err)
	}
	if count != 2 {
		t.Fatalf("pending count = %d, want 2", count)
	}
}

func TestRemoveEitherParty(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	f, err := svc.SendRequest(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Respond(f.ID, bob.ID, string(model.FriendshipAccepted)); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// 第三方无权删除
	if err := svc.Remove(f.ID, carol.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("third party: expected ErrPermissionDenied, got %v", err)
	}

	// 发起方可删除
	if err := svc.Remove(f.ID, alice.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// 删除后关系回到初始态，可重新发起
	status, canSend, err := svc.Status(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != "none" || !canSend {
		t.Fatalf("status = %q canSend = %v, want none/true", status, canSend)
	}
	if _, err := svc.SendRequest(bob.ID, alice.ID); err != nil {
		t.Fatalf("resend after remove: %v", err)
	}
}

func TestStatusBothDirections(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if _, err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}

	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		status, canSend, err := svc.Status(pair[0], pair[1])
		if err != nil {
			t.Fatalf("status %v: %v", pair, err)
		}
		if status != string(model.FriendshipPending) || canSend {
			t.Fatalf("status %v = %q canSend = %v, want pending/false", pair, status, canSend)
		}
	}
}

func TestRemoveNotFound(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")

	if err := svc.Remove(9999, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
