package model

import (
	"time"
)

// User 用户模型
// 索引与唯一约束：邮箱唯一
// 说明：密码仅存储哈希（PasswordHash），不存储明文
// IsActive 为账号激活标记，注册后默认激活，范围内不做物理删除
// LastSeen 用于最近在线时间

type User struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"type:varchar(128);not null;uniqueIndex;comment:邮箱"`
	PasswordHash string     `gorm:"type:varchar(255);not null;comment:密码哈希"`
	FirstName    string     `gorm:"type:varchar(64);not null;comment:名"`
	LastName     string     `gorm:"type:varchar(64);not null;comment:姓"`
	Avatar       string     `gorm:"type:varchar(255);comment:头像URL"`
	Bio          string     `gorm:"type:varchar(500);comment:个人简介"`
	Location     string     `gorm:"type:varchar(128);comment:所在地"`
	Website      string     `gorm:"type:varchar(255);comment:个人网站"`
	DateOfBirth  *time.Time `gorm:"comment:出生日期"`
	IsActive     bool       `gorm:"default:true;comment:是否激活"`
	Status       string     `gorm:"type:varchar(32);default:'offline';comment:在线状态"`
	LastSeen     time.Time  `gorm:"comment:最近在线时间"`
	CreatedAt    time.Time  `gorm:"comment:创建时间"`
	UpdatedAt    time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名（全局配置使用单数表名）
func (User) TableName() string { return "user" }
