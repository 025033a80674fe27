package util

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	return Claims{
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateJWTHMAC(t *testing.T) {
	tok := signHS256(t, "s3cret", validClaims())

	claims, err := ValidateJWT(tok, "s3cret")
	require.NoError(t, err)
	l := claims.Learner()
	assert.Equal(t, "user-1", l.UserID)
	assert.Equal(t, "Ada Lovelace", l.Name)
	assert.Equal(t, "ada@example.com", l.Email)

	_, err = ValidateJWT(tok, "other")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredAndAnonymous(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err := ValidateJWT(signHS256(t, "k", expired), "k")
	assert.Error(t, err)

	anon := validClaims()
	anon.Subject = ""
	_, err = ValidateJWT(signHS256(t, "k", anon), "k")
	assert.Error(t, err)

	_, err = ValidateJWT("not.a.token", "k")
	assert.Error(t, err)
}

func TestValidateJWTECDSA(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	tok, err := jwt.NewWithClaims(jwt.SigningMethodES256, validClaims()).SignedString(key)
	require.NoError(t, err)

	claims, err := ValidateJWT(tok, pemKey)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseRSAPublicKey(pemKey)
	assert.Error(t, err)
}
