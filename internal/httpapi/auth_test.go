package httpapi

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/Jamlick126/invoice-manager/internal/domain"
)

func TestNewAuthManagerHashesPlainPassword(t *testing.T) {
	auth, err := NewAuthManager(strings.Repeat("s", 32), time.Hour, "owner-pass")
	if err != nil {
		t.Fatalf("new auth manager: %v", err)
	}
	if !isPasswordHash(auth.ownerHash) {
		t.Fatalf("expected stored password to be hashed, got %q", auth.ownerHash)
	}

	if _, err := auth.Login(domain.LoginRequest{Password: "wrong"}); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
	resp, err := auth.Login(domain.LoginRequest{Password: "owner-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := auth.ParseToken(resp.AccessToken); err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
}

func TestNewAuthManagerKeepsExistingHash(t *testing.T) {
	hash, err := hashPassword("owner-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth, err := NewAuthManager(strings.Repeat("s", 32), time.Hour, hash)
	if err != nil {
		t.Fatalf("new auth manager: %v", err)
	}
	if auth.ownerHash != hash {
		t.Fatalf("expected hash to be kept as is")
	}
	if _, err := auth.Login(domain.LoginRequest{Password: "owner-pass"}); err != nil {
		t.Fatalf("login with pre-hashed password: %v", err)
	}
}

func TestNewAuthManagerRejectsMissingInputs(t *testing.T) {
	if _, err := NewAuthManager("", time.Hour, "x"); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
	if _, err := NewAuthManager("secret", time.Hour, "  "); err == nil {
		t.Fatalf("expected missing password to fail")
	}
}

func TestParseTokenRejectsForeignTokens(t *testing.T) {
	auth, err := NewAuthManager(strings.Repeat("s", 32), time.Hour, "owner-pass")
	if err != nil {
		t.Fatalf("new auth manager: %v", err)
	}

	other, _ := NewAuthManager(strings.Repeat("o", 32), time.Hour, "owner-pass")
	resp, err := other.Login(domain.LoginRequest{Password: "owner-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := auth.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("expected token signed with another secret to fail")
	}

	claims := jwtlib.RegisteredClaims{
		Subject:   "someone-else",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(auth.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := auth.ParseToken(signed); err == nil {
		t.Fatalf("expected wrong subject to fail")
	}

	expired, err := auth.sign(time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	if err := auth.ParseToken(expired); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}
