package domain

// Role values returned by the backend.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered back-office member.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateUserRequest is the payload for creating a member (also used for signup).
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the payload for updating a member.
// Empty fields are omitted and left unchanged by the backend.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}
