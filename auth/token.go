package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const hmacSecret = "cGluZ3BhbFRva2VuU2VjcmV0"

type ExpireTime int

const (
	AWeek  ExpireTime = 604800
	ADay   ExpireTime = 86400
	AnHour ExpireTime = 3600
)

type Claims struct {
	ID string `json:"id"`
	jwt.StandardClaims
}

func (c *Claims) GetAccountUID() string {
	return c.ID
}

func (c *Claims) IsExpired() bool {
	return c.ExpiresAt < time.Now().Unix()
}

// CreateAccountToken generates a signed JWT for the given account uid.
func CreateAccountToken(accountUID string) (string, error) {
	return CreateTokenWithExpire(accountUID, ADay)
}

func CreateTokenWithExpire(accountUID string, expired ExpireTime) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  accountUID,
		"exp": time.Now().Unix() + int64(expired),
	})
	tokenString, err := token.SignedString([]byte(hmacSecret))

	return tokenString, err
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(hmacSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// VerifyAccountToken resolves a token to an account uid. Every failure,
// transient or permanent, collapses to an empty uid; callers treat that as
// "expired" and never see the underlying error.
func VerifyAccountToken(tokenString string) string {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return ""
	}

	if claims.IsExpired() {
		return ""
	}

	return claims.GetAccountUID()
}
