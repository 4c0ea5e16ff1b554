package auth

import (
	"errors"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

type Claims struct {
	AdminID  int64     `json:"admin_id"`
	Username string    `json:"username"`
	Kind     TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenGeneratorAPI signs and verifies the admin session tokens.
type TokenGeneratorAPI interface {
	GenerateTokenPair(adminID int64, username string) (*TokenPair, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// JWTTokenGenerator issues HMAC-signed token pairs. Access and refresh tokens
// use separate secrets so a leaked refresh secret cannot mint access tokens.
type JWTTokenGenerator struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	now             func() time.Time
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessDuration, refreshDuration time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		now:             time.Now,
	}
}

func (g *JWTTokenGenerator) GenerateTokenPair(adminID int64, username string) (*TokenPair, error) {
	access, err := g.sign(adminID, username, TokenKindAccess, g.accessSecret, g.accessDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := g.sign(adminID, username, TokenKindRefresh, g.refreshSecret, g.refreshDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(g.accessDuration.Seconds()),
	}, nil
}

func (g *JWTTokenGenerator) sign(adminID int64, username string, kind TokenKind, secret []byte, duration time.Duration) (string, error) {
	now := g.now()
	claims := Claims{
		AdminID:  adminID,
		Username: username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    "attendance-tracker",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (g *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return g.validate(tokenString, TokenKindAccess, g.accessSecret)
}

func (g *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return g.validate(tokenString, TokenKindRefresh, g.refreshSecret)
}

func (g *JWTTokenGenerator) validate(tokenString string, kind TokenKind, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
