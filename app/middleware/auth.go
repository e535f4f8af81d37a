package appMiddleware

import "github.com/golang-jwt/jwt/v5"

type contextKey string

const (
	UserIDKey contextKey = "userID"
	TokenKey  contextKey = "token"
)

// Claims are the claims the chat backend puts in its access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
