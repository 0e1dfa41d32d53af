package domain

// Role is the authorization level carried in a token.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User models an authenticated actor. Users are seeded once at startup and
// immutable for the process lifetime.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
