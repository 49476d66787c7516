package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "owner-123", time.Hour, "secret-key")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.OwnerID != "owner-123" {
		t.Errorf("expected owner 'owner-123', got %s", token.OwnerID)
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %s", claims.Issuer)
	}
	if claims.Subject != "owner-123" {
		t.Errorf("expected subject 'owner-123', got %s", claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		owner    string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "o", time.Hour, "key"},
		{"empty owner", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "o", 0, "key"},
		{"empty key", "iss", "o", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.owner, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, err := GenerateJWTToken("test-issuer", "owner-456", 5*time.Minute, "secret-key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(genToken.SignedString, "secret-key", "test-issuer")
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsed.OwnerID != "owner-456" {
		t.Errorf("expected owner-456, got %s", parsed.OwnerID)
	}
	owner, err := parsed.GetOwnerID()
	if err != nil || owner != "owner-456" {
		t.Errorf("GetOwnerID = %q, %v", owner, err)
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", "o", time.Hour, "correct-key")

	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "test-issuer"); err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateJWTToken("other-issuer", "o", time.Hour, "key")

	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "test-issuer"); err == nil {
		t.Error("expected error for wrong issuer, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", "o", -time.Second, "key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "test-issuer")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseJWTToken_EmptySignKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", "o", time.Hour, "key")

	if _, err := ValidateAndParseJWTToken(genToken.SignedString, "", "test-issuer"); err == nil {
		t.Error("expected error when no sign key is configured")
	}
}

func TestValidateAndParseJWTToken_Garbage(t *testing.T) {
	if _, err := ValidateAndParseJWTToken("not.a.token", "key", "iss"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer   abc", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "abc", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseBearerToken(tt.header)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.header)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: got %q, %v; want %q", tt.header, got, err, tt.want)
		}
	}
}
