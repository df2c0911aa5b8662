package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)
	companyID := "0190a4b2-1111-7000-8000-000000000001"

	tokenString, expiresAt, err := svc.GenerateAccessToken(AccessClaims{
		UserID:    "user-1",
		Email:     "owner@example.com",
		CompanyID: &companyID,
		Role:      "owner",
	})

	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, companyID, claims["company_id"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
	assert.Nil(t, claims["employee_id"])
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("another-secret", time.Hour)
	verifier := NewJWTService("test-secret-key-for-jwt", time.Hour)

	tokenString, _, err := issuer.GenerateAccessToken(AccessClaims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}
