package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleCandidate = "candidate"
	RoleCompany   = "company"
	RoleAdmin     = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CompanyName  *string   `json:"companyName,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsCompany reports whether the user may manage postings and pipelines.
func (u *User) IsCompany() bool {
	return u != nil && (u.Role == RoleCompany || u.Role == RoleAdmin)
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100,valid_name"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"required,oneof=candidate company"`
	CompanyName string `json:"companyName" validate:"required_if=Role company,omitempty,min=2,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileUpdate struct {
	Name        string `json:"name" validate:"required,min=2,max=100,valid_name"`
	CompanyName string `json:"companyName" validate:"omitempty,min=2,max=200"`
}

// AuthResult is returned by login and register
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// TokenDenylist remembers revoked token ids until they expire
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginGuard blocks an email after repeated failed logins
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) (blocked bool, err error)
	Reset(ctx context.Context, email string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
