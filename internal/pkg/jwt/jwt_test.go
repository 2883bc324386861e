package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test an issued access token carries the identity claims and verifies
// against the same JWTAuth the router is wired with
func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "15m")

	employeeID := "employee-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, "company-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	tok, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := tok.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "employee-1", claims["employee_id"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])

	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)
}

// Test a token without an employee binding omits the claim entirely
func TestJWTService_GenerateAccessToken_NoEmployee(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "15m")

	tokenString, _, err := svc.GenerateAccessToken("user-admin", nil, "company-1", "owner")
	require.NoError(t, err)

	tok, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := tok.AsMap(context.Background())
	require.NoError(t, err)
	_, ok := claims["employee_id"]
	assert.False(t, ok)
}

func TestJWTService_GenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", nil, "company-1", "employee")
	assert.Error(t, err)
}
