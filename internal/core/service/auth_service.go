package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/madirex/funko-server/internal/core/domain"
	"github.com/madirex/funko-server/internal/core/ports"
)

// AuthService verifies credentials against the user directory and mints and
// checks the HS256 tokens carried by every non-login request. Secret and TTL
// come from configuration so rotating either is not a code change.
type AuthService struct {
	directory ports.UserDirectory
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(directory ports.UserDirectory, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 10 * time.Minute
	}
	return &AuthService{directory: directory, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Authenticate resolves username/password to a user. Any mismatch, including
// an unknown username, reports domain.ErrInvalidCredentials so callers cannot
// distinguish the two.
func (s *AuthService) Authenticate(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.directory.FindByUsername(username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// CreateToken embeds the user's identity and role so downstream checks need
// no lookup beyond identity resolution.
func (s *AuthService) CreateToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userid":   user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken reports whether the signature matches and the token has not
// expired.
func (s *AuthService) VerifyToken(token string) bool {
	_, err := s.parse(token)
	return err == nil
}

// Claims returns the embedded fields iff VerifyToken would return true;
// otherwise an empty map. It never panics past this boundary.
func (s *AuthService) Claims(token string) jwt.MapClaims {
	claims, err := s.parse(token)
	if err != nil {
		return jwt.MapClaims{}
	}
	return claims
}

func (s *AuthService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
