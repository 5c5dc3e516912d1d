package models

import (
	"time"

	"github.com/harentsoaR/healthease-api/internal/session"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserPending  UserStatus = "pending"
)

// ParseUserStatus reports whether s is a known account status.
func ParseUserStatus(s string) (UserStatus, bool) {
	switch st := UserStatus(s); st {
	case UserActive, UserInactive, UserPending:
		return st, true
	}
	return "", false
}

type User struct {
	ID           string       `bson:"_id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Email        string       `bson:"email" json:"email"`
	Phone        string       `bson:"phone" json:"phone"`
	Role         session.Role `bson:"role" json:"role"`
	Status       UserStatus   `bson:"status" json:"status"`
	JoinDate     time.Time    `bson:"joinDate" json:"joinDate"`
	Appointments int          `bson:"appointments" json:"appointments"`
	PasswordHash string       `bson:"passwordHash,omitempty" json:"-"` // Hide from JSON responses
}

func (u User) RecordID() string { return u.ID }
