package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestJWTService(t *testing.T, secret string, ttl time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{Secret: secret, Issuer: "agrisure-test", Expiration: ttl})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", 15*time.Minute)

	token, err := svc.GenerateToken("adjuster-42", "insurer-1", []string{RoleAdjuster})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "adjuster-42", claims.Subject)
	assert.Equal(t, "insurer-1", claims.InsurerID)
	assert.Equal(t, []string{RoleAdjuster}, claims.Roles)
	assert.Equal(t, "agrisure-test", claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	good := newTestJWTService(t, "secret-one", 15*time.Minute)

	t.Run("expired", func(t *testing.T) {
		expired := newTestJWTService(t, "secret-one", -time.Hour)
		token, err := expired.GenerateToken("u", "", nil)
		require.NoError(t, err)
		_, err = good.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestJWTService(t, "secret-two", 15*time.Minute)
		token, err := other.GenerateToken("u", "", nil)
		require.NoError(t, err)
		_, err = good.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		svc, err := NewJWTService(JWTConfig{Secret: "secret-one", Issuer: "someone-else", Expiration: time.Minute})
		require.NoError(t, err)
		token, err := svc.GenerateToken("u", "", nil)
		require.NoError(t, err)
		_, err = good.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func TestHasAnyRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleInvestigator}}
	assert.True(t, claims.HasRole(RoleInvestigator))
	assert.True(t, claims.HasAnyRole(RoleAdmin, RoleInvestigator))
	assert.False(t, claims.HasAnyRole(RoleAdmin, RoleAPIClient))
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = BearerToken("abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Minute)
	token, err := svc.GenerateToken("u-1", "", []string{RoleAdmin})
	require.NoError(t, err)

	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})
	handler := func(ctx context.Context, _ interface{}) (interface{}, error) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return "anonymous", nil
		}
		return claims.Subject, nil
	}

	t.Run("skipped method", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", resp)
	})

	t.Run("missing header", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		resp, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "u-1", resp)
	})
}
