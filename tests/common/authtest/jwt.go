//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider would for cfg.
type JWTHelper struct {
	cfg     config.JWTConfig
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg, service: jwt.NewService(cfg)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken backdates the token past its lifetime and the leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	issuedAt := time.Now().Add(-h.cfg.Duration - h.cfg.Leeway - time.Minute)
	token, err := h.service.GenerateTokenAt(userID, role, issuedAt)
	require.NoError(t, err)
	return token
}

// BearerHeader is the Authorization header value for token.
func BearerHeader(token string) string {
	return "Bearer " + token
}
