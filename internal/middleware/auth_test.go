package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courseplayer/internal/logger"
	"courseplayer/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, util.Claims{
		Name: "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	var seen string
	h := AuthMiddleware("secret", logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l, ok := LearnerFromContext(r.Context())
		require.True(t, ok)
		seen = l.UserID + "/" + l.DisplayName()
	}))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/courses", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
	assert.Equal(t, "user-1/Ada", seen)
}
