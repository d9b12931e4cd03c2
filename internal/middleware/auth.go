package middleware

import (
	"net/http"
	"strings"

	"github.com/outpost-tools/rostering-service/internal/auth"
	"github.com/outpost-tools/rostering-service/pkg/jwt"
	"github.com/outpost-tools/rostering-service/pkg/logger"
	"go.uber.org/zap"
)

func Auth(validator *jwt.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Missing authorization header", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(r.Context(), tokenString)
			if err != nil {
				logger.Debug("Token validation failed",
					zap.String("error", err.Error()),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userCtx := &auth.UserContext{
				UserID: claims.Subject,
			}

			ctx := auth.WithUser(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
