package domain

import (
	"context"
	"strings"
	"time"
)

type Role string

const (
	RoleCandidate Role = "Candidate"
	RoleEmployer  Role = "Employer"
)

// ParseRole accepts any letter case and returns the canonical role.
func ParseRole(s string) (Role, bool) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(RoleCandidate)):
		return RoleCandidate, true
	case strings.EqualFold(strings.TrimSpace(s), string(RoleEmployer)):
		return RoleEmployer, true
	}
	return "", false
}

type User struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null" json:"name"`
	Email           string    `gorm:"size:320;not null;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"size:128;not null" json:"-"`
	Role            Role      `gorm:"size:20;not null;default:Candidate" json:"role"`
	CompanyName     *string   `gorm:"size:200" json:"companyName,omitempty"`
	Summary         *string   `gorm:"type:text" json:"summary,omitempty"`
	Skills          *string   `gorm:"size:500" json:"skills,omitempty"`
	DefaultResumeID *string   `gorm:"type:varchar(36)" json:"defaultResumeId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Identity returns the claims a token issued for u carries.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Role: u.Role, Email: u.Email}
}

// UserSummary is the public part of a user returned with a token.
type UserSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        Role    `json:"role"`
	CompanyName *string `json:"companyName,omitempty"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	CompanyName *string
}

// LoginAttempt carries request metadata used for brute-force tracking.
type LoginAttempt struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
	RequestID string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// LoginGuard blocks an email after repeated failed logins.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailure(ctx context.Context, email, ip, userAgent, requestID string) error
	Clear(ctx context.Context, email, ip string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, attempt LoginAttempt) (*AuthResult, error)
	Me(ctx context.Context, caller Identity) (*User, error)
}
