package auth

import (
	"fmt"
	"time"

	"github.com/afoster8/flashcard-app-redux/config"
	"github.com/golang-jwt/jwt/v5"
)

// CreateToken mints a signed token for the given user ID. Tokens are
// long-lived (500h, matching the session length users expect here); there is
// no refresh flow.
func CreateToken(userID uint) (string, error) {
	secretKeyStr := config.Env.JWTSecret
	if secretKeyStr == "" {
		return "", fmt.Errorf("auth.go: JWT_SECRET_KEY not set")
	}

	secretKey := []byte(secretKeyStr)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"userId": float64(userID),
			"exp":    time.Now().Add(time.Hour * 500).Unix(),
		})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken validates a token and returns the user ID it was minted for.
func VerifyToken(tokenString string) (uint, error) {
	secretKeyStr := config.Env.JWTSecret
	if secretKeyStr == "" {
		return 0, fmt.Errorf("auth.go: JWT secret key not set")
	}

	secretKey := []byte(secretKeyStr)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return 0, fmt.Errorf("token missing userId claim")
	}

	return uint(userID), nil
}
