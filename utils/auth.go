// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	purposeSession = "session"
	purposeReset   = "password_reset"

	// TokenCookie is the cookie the browser shell authenticates with.
	TokenCookie = "token"
)

var ErrInvalidToken = errors.New("invalid token")

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// TokenManager signs and verifies session and password reset tokens.
type TokenManager struct {
	secret      []byte
	expiry      time.Duration
	resetExpiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret not set")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{
		secret:      []byte(secret),
		expiry:      expiry,
		resetExpiry: 30 * time.Minute,
	}, nil
}

// Expiry is the lifetime of session tokens.
func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// GenerateToken issues a session token for the user.
func (m *TokenManager) GenerateToken(userID uuid.UUID) (string, error) {
	return m.sign(userID, purposeSession, m.expiry)
}

// GenerateResetToken issues a short-lived token that only allows a password update.
func (m *TokenManager) GenerateResetToken(userID uuid.UUID) (string, error) {
	return m.sign(userID, purposeReset, m.resetExpiry)
}

func (m *TokenManager) sign(userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID.String(),
		"purpose": purpose,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString(m.secret)
}

// Parse validates a token and returns its subject and purpose.
func (m *TokenManager) Parse(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	purpose, _ := claims["purpose"].(string)
	return userID, purpose, nil
}

// AuthMiddleware accepts session tokens only.
func (m *TokenManager) AuthMiddleware() gin.HandlerFunc {
	return m.middleware(purposeSession)
}

// PasswordUpdateMiddleware accepts either a session token or a reset token.
func (m *TokenManager) PasswordUpdateMiddleware() gin.HandlerFunc {
	return m.middleware(purposeSession, purposeReset)
}

func (m *TokenManager) middleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, purpose, err := m.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		permitted := false
		for _, p := range allowed {
			if p == purpose {
				permitted = true
				break
			}
		}
		if !permitted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(sessionKey, Session{UserID: userID, Purpose: purpose})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	tokenString := c.GetHeader("Authorization")
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
		return tokenString[7:]
	}
	if tokenString != "" {
		return tokenString
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
