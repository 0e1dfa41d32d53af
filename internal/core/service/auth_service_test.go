package service

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/madirex/funko-server/internal/core/domain"
)

func seededDirectory(t *testing.T) *UserDirectory {
	t.Helper()
	dir := NewUserDirectory()
	dir.Add(testUser(t, "1", "Madi", "madi1234", domain.RoleAdmin))
	dir.Add(testUser(t, "2", "Alex", "alex1234", domain.RoleUser))
	return dir
}

func testUser(t *testing.T, id, username, password string, role domain.Role) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return domain.User{ID: id, Username: username, PasswordHash: string(hash), Role: role}
}

func TestAuthenticate_Success(t *testing.T) {
	svc := NewAuthService(seededDirectory(t), "secret", time.Hour)

	user, err := svc.Authenticate("Madi", "madi1234")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := NewAuthService(seededDirectory(t), "secret", time.Hour)

	if _, err := svc.Authenticate("Madi", "nope"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_UnknownUserIndistinguishable(t *testing.T) {
	svc := NewAuthService(seededDirectory(t), "secret", time.Hour)

	if _, err := svc.Authenticate("ghost", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	dir := seededDirectory(t)
	svc := NewAuthService(dir, "secret", time.Hour)

	user, _ := dir.FindByUsername("Madi")
	token, err := svc.CreateToken(*user)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if !svc.VerifyToken(token) {
		t.Fatalf("freshly minted token must verify")
	}

	claims := svc.Claims(token)
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("expected ADMIN role claim, got %v", claims["role"])
	}
	if claims["userid"] != "1" || claims["username"] != "Madi" {
		t.Fatalf("unexpected identity claims: %v", claims)
	}
}

func TestTokenExpires(t *testing.T) {
	dir := seededDirectory(t)
	svc := NewAuthService(dir, "secret", time.Millisecond)

	user, _ := dir.FindByUsername("Madi")
	token, err := svc.CreateToken(*user)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	time.Sleep(1100 * time.Millisecond) // exp has one-second resolution

	if svc.VerifyToken(token) {
		t.Fatalf("token must not verify after its TTL")
	}
	if len(svc.Claims(token)) != 0 {
		t.Fatalf("claims of an expired token must be empty")
	}
}

func TestTokenRejectedUnderDifferentSecret(t *testing.T) {
	dir := seededDirectory(t)
	minter := NewAuthService(dir, "secret-a", time.Hour)
	verifier := NewAuthService(dir, "secret-b", time.Hour)

	user, _ := dir.FindByUsername("Madi")
	token, err := minter.CreateToken(*user)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if verifier.VerifyToken(token) {
		t.Fatalf("token signed with a different secret must not verify")
	}
	if len(verifier.Claims(token)) != 0 {
		t.Fatalf("claims must be empty for a foreign token")
	}
}

func TestClaimsOfGarbageToken(t *testing.T) {
	svc := NewAuthService(seededDirectory(t), "secret", time.Hour)

	if svc.VerifyToken("not-a-token") {
		t.Fatalf("garbage must not verify")
	}
	if len(svc.Claims("not-a-token")) != 0 {
		t.Fatalf("claims of garbage must be empty")
	}
}
