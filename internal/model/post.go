package model

import (
	"time"
)

// Post 帖子模型
// 软删除通过 IsActive 标记实现，记录保留在库中
// LikesCount 始终等于 post_like 表中该帖子的行数（点赞事务内重算）
// CommentsCount 为父帖评论计数，随评论创建/删除增减

type Post struct {
	ID            uint      `gorm:"primaryKey"`
	AuthorID      uint      `gorm:"not null;index;comment:作者ID"`
	Content       string    `gorm:"type:text;not null;comment:帖子内容"`
	Images        []string  `gorm:"serializer:json;type:text;comment:图片URL列表"`
	LikesCount    int       `gorm:"default:0;comment:点赞数"`
	CommentsCount int       `gorm:"default:0;comment:评论数"`
	IsActive      bool      `gorm:"default:true;comment:是否有效"`
	CreatedAt     time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Post) TableName() string { return "post" }

// PostLike 帖子点赞关系
// (post_id, user_id) 唯一，点赞集合即该表中帖子对应的行

type PostLike struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user;comment:帖子ID"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user;comment:用户ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (PostLike) TableName() string { return "post_like" }
