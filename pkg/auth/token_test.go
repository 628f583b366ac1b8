package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/sahajbill/counter/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "sahajbill"}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintSessionToken(cfg, "user-1", "admin", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintSessionToken(testJWTConfig(), "user-1", "staff", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(config.JWTConfig{Secret: "other", Issuer: "sahajbill"}, token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := MintSessionToken(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"}, "user-1", "staff", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(testJWTConfig(), token); err == nil {
		t.Fatal("expected issuer mismatch")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintSessionToken(cfg, "user-1", "staff", -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	_, err = ParseSessionToken(cfg, token)
	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestMintRequiresSecret(t *testing.T) {
	if _, err := MintSessionToken(config.JWTConfig{Issuer: "sahajbill"}, "user-1", "staff", time.Minute); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}
