package model

import "time"

// Roles carried by a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ============================================================================
// DATABASE ENTITY (Internal - GORM tags)
// ============================================================================

// User represents an account in the database
type User struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"index"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	Role         string    `gorm:"default:user;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// IsAdmin reports whether the account may manage events.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ============================================================================
// REPOSITORY DATA TRANSFER OBJECTS (Internal - for repository layer)
// ============================================================================

// CreateUserRequest represents the data needed to create a user in repository
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// SignupRequest represents the API request for user registration
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest is the form-encoded body of POST /token
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse represents the API response for a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse represents user data in API responses (without sensitive info)
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ============================================================================
// CONVERSION METHODS
// ============================================================================

// ToCreateUserRequest converts API request to repository request
func (r *SignupRequest) ToCreateUserRequest() CreateUserRequest {
	return CreateUserRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     RoleUser,
	}
}

// ToUserResponse converts database entity to API response
func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
