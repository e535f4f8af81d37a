package appMiddleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Riyasinha-01/Voyage/config"
	"github.com/Riyasinha-01/Voyage/internal/api"
)

// Authenticate requires an "Authorization: Bearer <token>" header. When a
// secret is configured the token must also be a valid HS256 JWT; otherwise
// verification is left to the chat backend. The raw token and, when known,
// the user id are added to the request context.
func Authenticate(cfg config.JWTConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	secret := []byte(cfg.SecretKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := api.BearerToken(r)
			if !ok {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, tokenString)

			if len(secret) > 0 {
				claims := &Claims{}
				opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
				if cfg.Issuer != "" {
					opts = append(opts, jwt.WithIssuer(cfg.Issuer))
				}
				token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
					return secret, nil
				}, opts...)
				if err != nil || !token.Valid {
					msg := "Invalid or expired token"
					if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
						msg = "Invalid token signature"
					}
					logger.WarnContext(r.Context(), "Token validation failed", slog.Any("error", err))
					api.ErrorResponse(w, r, http.StatusUnauthorized, msg)
					return
				}
				if !api.VerifyAudience(claims.Audience, cfg.Audience) {
					api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token audience")
					return
				}
				ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}
