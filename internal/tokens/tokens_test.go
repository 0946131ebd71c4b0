package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return tok
}

func TestExpiresAt(t *testing.T) {
	tok := signed(t, time.Hour)
	exp, ok := ExpiresAt(tok)
	if !ok {
		t.Fatal("expected exp claim to be readable")
	}
	if d := time.Until(exp); d < 55*time.Minute || d > 65*time.Minute {
		t.Fatalf("expiry out of expected range: %v", d)
	}
}

func TestExpiresAtOpaqueToken(t *testing.T) {
	if _, ok := ExpiresAt("not-a-jwt"); ok {
		t.Fatal("opaque token should not report an expiry")
	}
	if ExpiresWithin("not-a-jwt", time.Hour) {
		t.Fatal("opaque token should never be treated as expiring")
	}
}

func TestExpiresWithin(t *testing.T) {
	soon := signed(t, 10*time.Second)
	if !ExpiresWithin(soon, 30*time.Second) {
		t.Fatal("token expiring in 10s should be within 30s leeway")
	}
	later := signed(t, time.Hour)
	if ExpiresWithin(later, 30*time.Second) {
		t.Fatal("token expiring in 1h should not be within 30s leeway")
	}
}
