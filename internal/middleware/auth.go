package middleware

import (
	"context"
	"net/http"
	"strings"

	"courseplayer/internal/model"
	"courseplayer/internal/util"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware verifies the bearer token and stores the model.Learner it
// names on the request context.
func AuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug().Msg("Authorization header missing")
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug().Msg("Invalid authorization header")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}
			claims, err := util.ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				logger.Warn().Err(err).Msg("Invalid token")
				http.Error(w, "Invalid token: "+err.Error(), http.StatusUnauthorized)
				return
			}
			ctx := WithLearner(r.Context(), claims.Learner())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLearner returns a context carrying the authenticated learner.
func WithLearner(ctx context.Context, l model.Learner) context.Context {
	return context.WithValue(ctx, UserContextKey, l)
}

// LearnerFromContext returns the authenticated learner, if any.
func LearnerFromContext(ctx context.Context) (model.Learner, bool) {
	l, ok := ctx.Value(UserContextKey).(model.Learner)
	return l, ok && l.UserID != ""
}
