package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/config"
)

// Token types carried in the token_type claim. Refresh tokens are only
// accepted by the refresh endpoint; access tokens everywhere else.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// Claims defines JWT claims used by the API.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateTokenPair issues an access/refresh token pair for the user.
func GenerateTokenPair(userID uint, username string) (access string, refresh string, err error) {
	cfg := config.Get()
	access, err = generateToken(userID, username, TokenTypeAccess, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	if err != nil {
		return "", "", err
	}
	refresh, err = generateToken(userID, username, TokenTypeRefresh, time.Duration(cfg.RefreshTokenHours)*time.Hour)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAccessToken issues a fresh access token, used by the refresh flow.
func GenerateAccessToken(userID uint, username string) (string, error) {
	cfg := config.Get()
	return generateToken(userID, username, TokenTypeAccess, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
}

func generateToken(userID uint, username, tokenType string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a JWT of the expected type and returns its claims.
func ParseToken(tokenStr, expectedType string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
