package models

// Roles recognised by the gateway.
const (
	RoleFaculty = "faculty"
	RoleTA      = "ta"
	RoleStudent = "student"
)

// User is the profile returned by the backend on login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
