package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleVisitor UserRole = "visitor"
	RoleCompany UserRole = "company"
	RoleAdmin   UserRole = "admin"
)

// User is an authenticated account. Accounts with RoleCompany may be linked
// to at most one Company record; the link lives on the company side.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	Role          UserRole  `json:"role" db:"role"`
	FullName      *string   `json:"full_name,omitempty" db:"full_name"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	Establishment *string   `json:"establishment,omitempty" db:"establishment"`
	GradeLevel    *string   `json:"grade_level,omitempty" db:"grade_level"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
