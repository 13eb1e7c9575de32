package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the fixed claim set carried by an auth token: the owning user's
// id as text plus the standard "exp" expiration timestamp. No other claims
// are issued or accepted.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, expiring identity tokens.
// Its configuration is immutable after construction and safe for
// concurrent use.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService signing HS256 tokens with the
// given secret, valid for the given lifetime.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate creates a signed token for the given user, expiring after the
// configured lifetime.
func (s *TokenService) Generate(userID uuid.UUID) (string, error) {
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies a token's signature and expiration and returns its claims.
// Returns ErrTokenExpired when the token is past its expiration instant and
// ErrTokenInvalid for every other validation failure (bad signature,
// malformed structure, wrong signing method).
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// DecodeUserID decodes a token and parses its subject claim back into a
// user id. Fails the same way Decode does; a subject that is not a valid
// UUID is an invalid token.
func (s *TokenService) DecodeUserID(tokenString string) (uuid.UUID, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}
