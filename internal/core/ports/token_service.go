package ports

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/madirex/funko-server/internal/core/domain"
)

// TokenService mints and verifies the signed credentials carried by every
// non-login request.
type TokenService interface {
	// Authenticate resolves a username/password pair against the user
	// directory. It returns domain.ErrInvalidCredentials on any mismatch.
	Authenticate(username, password string) (*domain.User, error)
	CreateToken(user domain.User) (string, error)
	VerifyToken(token string) bool
	// Claims returns the embedded fields iff VerifyToken would return true;
	// otherwise it returns an empty map.
	Claims(token string) jwt.MapClaims
}
