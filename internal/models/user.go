package models

import (
	"time"
)

// 用户角色
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff" // 库存管理员
	RoleCustomer = "customer"
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                     // 主键
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`    // 用户名
	PasswordHash string     `gorm:"not null" json:"-"`                                        // 密码哈希（不返回给前端）
	Role         string     `gorm:"type:varchar(20);not null;default:'customer'" json:"role"` // 角色
	LastLoginAt  *time.Time `json:"last_login_at"`                                            // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否管理员
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
