package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty string")
	}
}

func TestDecodeUserIDRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	got, err := svc.DecodeUserID(token)
	if err != nil {
		t.Fatalf("DecodeUserID() unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("DecodeUserID() = %s, want %s", got, userID)
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Decode("not-a-valid-token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() error = %v, want ErrTokenInvalid", err)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := NewTokenService("correct-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)

	token, err := issuer.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	_, err = verifier.Decode(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() error = %v, want ErrTokenInvalid", err)
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	_, err = svc.Decode(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Decode() error = %v, want ErrTokenExpired", err)
	}
}

func TestDecodeTamperedToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	// Flip one byte in each segment of the token.
	for i := 0; i < len(token); i += len(token) / 3 {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}

		if _, err := svc.Decode(string(tampered)); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Decode() error = %v for tampered byte %d, want ErrTokenInvalid", err, i)
		}
	}
}

func TestDecodeUserIDNonUUIDSubject(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	// Hand-craft a token whose user_id claim is not a UUID.
	claims := Claims{
		UserID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = svc.DecodeUserID(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("DecodeUserID() error = %v, want ErrTokenInvalid", err)
	}
}
