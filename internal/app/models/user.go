package models

import "time"

// User roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User is a login account. Student accounts are created by the import
// pipeline alongside the student record.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	StudentID    *string   `json:"studentId,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
