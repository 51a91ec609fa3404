package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

func newService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "welearn"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	actor := models.Actor{ID: 3, Name: "Ana Silva", Email: "ana@x.com", Role: models.RoleStudent}

	token, err := svc.GenerateToken(actor)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAndExtractClaims(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, actor, claims.Actor())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejects(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateToken(models.Actor{ID: 1, Name: "Prof. Silva", Role: models.RoleTeacher})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "welearn"})
	_, err = other.ValidateToken(token.AccessToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	wrongIssuer := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "elsewhere"})
	_, err = wrongIssuer.ValidateToken(token.AccessToken)
	assert.Error(t, err)

	later := newService()
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	_, err = svc.ValidateAndExtractClaims("")
	assert.Error(t, err)

	bad, err := svc.GenerateToken(models.Actor{ID: 1, Role: "admin"})
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(bad.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	tok, err = ExtractBearerToken("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	tok, err = ExtractBearerToken("raw-token")
	require.NoError(t, err)
	assert.Equal(t, "raw-token", tok)

	_, err = ExtractBearerToken("  ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPasswords(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "123456"))
	assert.False(t, CheckPassword(hash, "654321"))
	assert.False(t, CheckPassword("", "123456"))
}

func TestPeekActor(t *testing.T) {
	actor := models.Actor{ID: 1, Name: "Prof. Silva", Email: "silva@postech.com", Role: models.RoleTeacher}
	token, err := NewJWTService(JWTConfig{SecretKey: "server-only", AccessTokenExp: time.Hour}).GenerateToken(actor)
	require.NoError(t, err)

	got, err := PeekActor(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, actor, got)

	_, err = PeekActor("garbage")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
