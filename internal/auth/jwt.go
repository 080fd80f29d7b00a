package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/projecto-dev/projecto/db"
	"github.com/projecto-dev/projecto/internal/models"
	"gorm.io/gorm"
)

var jwtSecret string

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = time.Hour * 24
	RefreshTokenTTL = time.Hour * 168
)

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// TokenPair is what a successful login returns. The refresh token carries a
// jti claim so logout can blacklist it individually.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func GenerateTokenPair(userID uint, email string) (TokenPair, error) {
	access, err := generateToken(userID, email, TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := generateToken(userID, email, TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// GenerateAccessToken mints a standalone access token, used when a client
// redeems a refresh token.
func GenerateAccessToken(userID uint, email string) (string, error) {
	return generateToken(userID, email, TokenTypeAccess, AccessTokenTTL)
}

func generateToken(userID uint, email, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"email":      email,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}

	return claims, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func VerifyAccessToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims["token_type"] != TokenTypeAccess {
		return nil, fmt.Errorf("Not an access token")
	}

	return claims, nil
}

// VerifyRefreshToken validates a refresh token and checks it has not been
// blacklisted by a previous logout.
func VerifyRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims["token_type"] != TokenTypeRefresh {
		return nil, fmt.Errorf("Not a refresh token")
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil, fmt.Errorf("Invalid token claims")
	}

	var revoked models.RevokedToken
	err = db.DB.Where("jti = ?", jti).First(&revoked).Error

	if err == nil {
		return nil, fmt.Errorf("Token has been revoked")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return claims, nil
}

// RevokeRefreshToken blacklists a refresh token so it can no longer be
// exchanged for new access tokens. Revoking an already-revoked token fails.
func RevokeRefreshToken(tokenString string) error {
	claims, err := VerifyRefreshToken(tokenString)
	if err != nil {
		return err
	}

	jti := claims["jti"].(string)

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return db.DB.Create(&models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}).Error
}
