package authUtils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"sheharfix-be/models"
)

const tokenTTL = 7 * 24 * time.Hour

// Identity is the set of claims embedded in a bearer token.
type Identity struct {
	ID       string
	Username string
	Role     models.UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

var warnOnce sync.Once

func jwtSecret() []byte {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		warnOnce.Do(func() {
			log.Println("JWT_SECRET not set, using insecure development secret")
		})
		secretStr = "dev_secret"
	}
	return []byte(secretStr)
}

// GenerateToken signs a 7-day token carrying the user's id, username and role.
func GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// ParseToken validates a token string and extracts the embedded identity.
func ParseToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return nil, errors.New("invalid token claims")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &Identity{ID: id, Username: username, Role: models.UserRole(role)}, nil
}
