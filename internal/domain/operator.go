package domain

import (
	"time"
)

type Role string

const (
	RoleViewer     Role = "观察员"
	RoleDispatcher Role = "调度员"
	RoleAdmin      Role = "管理员"
)

// Operator: 使用排班系统的操作人员（不参与排班）
type Operator struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
