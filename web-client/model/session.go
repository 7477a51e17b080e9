package model

// RoleAdmin unlocks catalog management and the global bookings view.
const RoleAdmin = "admin"

// Session is the client's authentication state. Role is only meaningful
// while Authenticated is true.
type Session struct {
	Token         string
	Authenticated bool
	// Pending is set between login (or startup with a stored token) and the
	// identity check resolving.
	Pending bool
	Role    string
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}

// ============================================================================
// API DATA TRANSFER OBJECTS (External - JSON tags for HTTP)
// ============================================================================

// User represents the identity returned by GET /users/me and POST /signup
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role" validate:"required"`
}

// SignupRequest represents the user registration request
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents the response of POST /token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse represents the error envelope returned by the API.
// Detail is either a string or a list of field errors.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}
