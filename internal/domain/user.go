package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleRecruiter Role = "RECRUITER"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins first and last name the way responses display it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserQuery narrows an admin user listing. Empty Role means all roles.
type UserQuery struct {
	Role Role
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      Role   `json:"role" binding:"required,role"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse strips the password hash from a stored user.
func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserRepository interface {
	// Create assigns the ID. Returns ErrDuplicate when email or username is taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmailOrUsername matches the value against both fields, case-sensitive.
	GetByEmailOrUsername(ctx context.Context, value string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// GetByIDs resolves a batch of references. Unknown ids are absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)
	List(ctx context.Context, q UserQuery, p PageRequest) ([]User, int64, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	// Authenticate verifies a bearer token and re-checks the account is still active.
	Authenticate(ctx context.Context, token string) (*Caller, error)
}

type UserUsecase interface {
	ListUsers(ctx context.Context, q UserQuery, p PageRequest) (*Page[UserResponse], error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ActivateUser(ctx context.Context, id string) (*UserResponse, error)
	DeactivateUser(ctx context.Context, id string) (*UserResponse, error)
}

// UserSortFields maps accepted sortBy values of the admin listing to stored field names.
var UserSortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"email":     "email",
	"username":  "username",
	"firstName": "firstName",
	"lastName":  "lastName",
	"role":      "role",
	"isActive":  "isActive",
}
