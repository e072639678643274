package model

import (
	"time"
)

// Comment 评论模型
// 归属某个帖子，软删除通过 IsActive 标记实现
// 创建时父帖 CommentsCount 加一，软删除时减一（事务内完成）

type Comment struct {
	ID         uint      `gorm:"primaryKey"`
	PostID     uint      `gorm:"not null;index;comment:帖子ID"`
	AuthorID   uint      `gorm:"not null;index;comment:作者ID"`
	Content    string    `gorm:"type:text;not null;comment:评论内容"`
	LikesCount int       `gorm:"default:0;comment:点赞数"`
	IsActive   bool      `gorm:"default:true;comment:是否有效"`
	CreatedAt  time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string { return "comment" }

// CommentLike 评论点赞关系
// (comment_id, user_id) 唯一

type CommentLike struct {
	ID        uint      `gorm:"primaryKey"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_user;comment:评论ID"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_user;comment:用户ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (CommentLike) TableName() string { return "comment_like" }
