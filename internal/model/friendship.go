package model

import (
	"time"
)

// FriendshipStatus 好友关系状态
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"  // 等待处理
	FriendshipAccepted FriendshipStatus = "accepted" // 已接受
	FriendshipDeclined FriendshipStatus = "declined" // 已拒绝
	FriendshipBlocked  FriendshipStatus = "blocked"  // 已拉黑
)

// ValidFriendshipStatus 判断是否为合法状态值
func ValidFriendshipStatus(s string) bool {
	switch FriendshipStatus(s) {
	case FriendshipPending, FriendshipAccepted, FriendshipDeclined, FriendshipBlocked:
		return true
	}
	return false
}

// Friendship 好友关系
// 无序对 (requester, recipient) 至多存在一条记录：
// 有序对上建唯一索引，写入前再做双向存在性查询兜底
// 状态流转仅由 recipient 发起，删除可由任一方发起

type Friendship struct {
	ID          uint             `gorm:"primaryKey"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_requester_recipient;index;comment:发起者ID"`
	RecipientID uint             `gorm:"not null;uniqueIndex:idx_requester_recipient;index;comment:接收者ID"`
	Status      FriendshipStatus `gorm:"type:varchar(32);default:'pending';comment:关系状态"`
	CreatedAt   time.Time        `gorm:"comment:创建时间"`
	UpdatedAt   time.Time        `gorm:"comment:更新时间"`

	Requester *User `gorm:"foreignKey:RequesterID"`
	Recipient *User `gorm:"foreignKey:RecipientID"`
}

func (Friendship) TableName() string { return "friendship" }
