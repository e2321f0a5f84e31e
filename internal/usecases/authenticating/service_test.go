package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/competitor-intel-api/internal/config"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, expiresAt time.Time) string {
	t.Helper()

	claims := domain.Claims{
		UserID:     "usr_1",
		UserEmail:  "analyst@example.com",
		UserRoleID: domain.RoleAnalyst,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		wantErr  error
		validate func(t *testing.T, claims *domain.Claims)
	}{
		{
			name: "token válido",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), time.Now().Add(time.Hour))
			},
			validate: func(t *testing.T, claims *domain.Claims) {
				assert.Equal(t, "usr_1", claims.UserID)
				assert.Equal(t, domain.RoleAnalyst, claims.UserRoleID)
			},
		},
		{
			name: "token expirado",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), time.Now().Add(-time.Hour))
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "assinado com outro segredo",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("outro"), time.Now().Add(time.Hour))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "token vazio",
			token:   func(t *testing.T) string { return "" },
			wantErr: ErrMissingToken,
		},
		{
			name:    "token malformado",
			token:   func(t *testing.T) string { return "nao.e.jwt" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			tt.validate(t, claims)
		})
	}
}
