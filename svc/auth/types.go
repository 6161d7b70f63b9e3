package auth

// Entry keys in the credential store.
const (
	TokenKey    = "auth-token"
	UserInfoKey = "user-info"
)

// Mock account. Only this pair signs in.
const (
	ValidEmail    = "soar@soar.com"
	ValidPassword = "hire-me"

	MockUserID   = "user-123"
	MockUserName = "Usuário Soar"
	MockUserRole = "admin"

	// MockToken is returned by every successful login. It is opaque and never verified.
	MockToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJ1c2VyLTEyMyIsIm5hbWUiOiJVc3XDoXJpbyBTb2FyIiwiaWF0IjoxNTE2MjM5MDIyfQ"
)

// Routes the session flow navigates between.
const (
	LoginPath   = "/"
	LandingPath = "/dashboard"
	FromParam   = "from"
)

// Credentials come from the login form or the JSON API.
type Credentials struct {
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"rememberMe"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Info is the part of the user persisted next to the token.
func (u User) Info() UserInfo {
	return UserInfo{Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserInfo is stored as JSON under UserInfoKey.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Result is the outcome of a login attempt. Invalid credentials are a
// Result with Success false, never an error.
type Result struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

type LogoutResult struct {
	Success bool `json:"success"`
}

// UIState is what a login form needs to render.
type UIState struct {
	IsLoggingIn  bool    `json:"isLoggingIn"`
	IsLoggingOut bool    `json:"isLoggingOut"`
	AuthError    *string `json:"authError"`
}
