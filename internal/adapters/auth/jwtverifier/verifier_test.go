package jwtverifier

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "this-is-a-very-long-jwt-secret-for-testing-32+"

func sign(t *testing.T, key string, method jwt.SigningMethod, c identityClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func claimsFor(sub string, exp time.Time) identityClaims {
	return identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "petfinder-idp",
			Audience:  jwt.ClaimStrings{"petfinder"},
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: "ana@example.test",
		Name:  "Ana Perez",
	}
}

func TestVerify_OK(t *testing.T) {
	v := New(secret, "petfinder-idp", "petfinder")
	tok := sign(t, secret, jwt.SigningMethodHS256, claimsFor("u-1", time.Now().Add(time.Hour)))

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "ana@example.test", c.Email)
	assert.Equal(t, "Ana", c.FirstName())
}

func TestVerify_Rejects(t *testing.T) {
	v := New(secret, "petfinder-idp", "petfinder")

	cases := map[string]string{
		"expired":      sign(t, secret, jwt.SigningMethodHS256, claimsFor("u-1", time.Now().Add(-time.Hour))),
		"wrong secret": sign(t, "another-secret-that-is-long-enough-123", jwt.SigningMethodHS256, claimsFor("u-1", time.Now().Add(time.Hour))),
		"wrong alg":    sign(t, secret, jwt.SigningMethodHS512, claimsFor("u-1", time.Now().Add(time.Hour))),
		"no subject":   sign(t, secret, jwt.SigningMethodHS256, claimsFor("", time.Now().Add(time.Hour))),
		"garbage":      "not.a.jwt",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err := v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestVerify_WrongIssuer(t *testing.T) {
	v := New(secret, "someone-else", "")
	tok := sign(t, secret, jwt.SigningMethodHS256, claimsFor("u-1", time.Now().Add(time.Hour)))
	_, err := v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
