package jwt

import (
	"testing"
	"time"

	"social-system/config"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "social-system-test",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken("42", map[string]interface{}{"email": "alice@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("subject = %q, want \"42\"", claims.Subject)
	}
	if claims.Email() != "alice@example.com" {
		t.Fatalf("email = %q, want alice@example.com", claims.Email())
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	svc := NewJWTService(testConfig())

	if _, err := svc.GenerateToken("", nil); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig())
	token, err := svc.GenerateToken("42", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewJWTService(config.JWTConfig{
		Secret:     "another-secret",
		ExpireTime: time.Hour,
		Issuer:     "social-system-test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: -time.Minute,
		Issuer:     "social-system-test",
	})
	token, err := svc.GenerateToken("42", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestEmailMissing(t *testing.T) {
	svc := NewJWTService(testConfig())
	token, err := svc.GenerateToken("42", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email() != "" {
		t.Fatalf("email = %q, want empty", claims.Email())
	}
}
