package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "hrms"

var ErrWrongTokenType = errors.New("jwt: wrong token type")

// Claims identify the user and the Redis session a token belongs to. Type is
// "access" or "refresh" so one can never stand in for the other.
type Claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	Type      string `json:"typ"`
	jwt.RegisteredClaims
}

type tokenKind struct {
	name   string
	secret []byte
	ttl    time.Duration
}

// JWTManager signs and verifies the HS256 access/refresh pair.
type JWTManager struct {
	access  tokenKind
	refresh tokenKind
	parser  *jwt.Parser
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		access:  tokenKind{name: "access", secret: []byte(accessSecret), ttl: accessTTL},
		refresh: tokenKind{name: "refresh", secret: []byte(refreshSecret), ttl: refreshTTL},
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (m *JWTManager) GenerateAccessToken(userID, sid string) (string, time.Time, error) {
	return m.access.sign(userID, sid)
}

func (m *JWTManager) GenerateRefreshToken(userID, sid string) (string, time.Time, error) {
	return m.refresh.sign(userID, sid)
}

func (m *JWTManager) ParseAccessToken(token string) (*Claims, error) {
	return m.parse(m.access, token)
}

func (m *JWTManager) ParseRefreshToken(token string) (*Claims, error) {
	return m.parse(m.refresh, token)
}

func (k tokenKind) sign(userID, sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(k.ttl)
	claims := Claims{
		UserID:    userID,
		SessionID: sid,
		Type:      k.name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", k.name, err)
	}
	return signed, exp, nil
}

func (m *JWTManager) parse(k tokenKind, token string) (*Claims, error) {
	var claims Claims
	if _, err := m.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return k.secret, nil
	}); err != nil {
		return nil, err
	}
	if claims.Type != k.name {
		return nil, ErrWrongTokenType
	}
	return &claims, nil
}
