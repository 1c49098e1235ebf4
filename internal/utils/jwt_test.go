package utils

import (
	"os"
	"testing"
	"time"

	"ecodrip-server/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func TestMain(m *testing.M) {
	config.Set(config.Config{JWT: config.JWTConfig{Secret: "test_secret", ExpirationHours: 24}})
	os.Exit(m.Run())
}

func TestLoginToken_RoundTrip(t *testing.T) {
	token, err := GenerateLoginToken("u-1", "alice@example.com", true, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}
	claims, err := ParseLoginToken(token)
	if err != nil {
		t.Fatalf("ParseLoginToken error: %v", err)
	}
	if claims.ID != "u-1" || claims.Email != "alice@example.com" || !claims.Admin || claims.Type != "login" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseLoginToken_Expired(t *testing.T) {
	token, err := GenerateLoginToken("u-1", "alice@example.com", false, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}
	if _, err := ParseLoginToken(token); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestParseLoginToken_RejectsForeignSecret(t *testing.T) {
	claims := LoginClaims{
		ID:   "u-1",
		Type: "login",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ecodrip-server",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseLoginToken(forged); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseLoginToken_RejectsWrongType(t *testing.T) {
	claims := LoginClaims{
		ID:   "u-1",
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ecodrip-server",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseLoginToken(token); err == nil {
		t.Fatalf("expected error for wrong token type")
	}
}

func TestParseLoginToken_Garbage(t *testing.T) {
	if _, err := ParseLoginToken("not-a-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
