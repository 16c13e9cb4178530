package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/handler/httperr"
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/jwt"
	"arena-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var (
	errMissingToken     = errs.New("access token required")
	errAuthOrder        = errs.New("role check ran before authentication")
	errInsufficientRole = errs.New("insufficient role")
)

// customer < operator < admin; operator routes admit admins too.
var roleRank = map[user.Role]int{
	user.RoleCustomer: 1,
	user.RoleOperator: 2,
	user.RoleAdmin:    3,
}

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	logger         *slog.Logger
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenValidator: tokenValidator, logger: logger}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			httperr.AbortWithCode(c, http.StatusUnauthorized, errMissingToken, "Unauthenticated", "Access token required", nil)
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			m.logger.WarnContext(c.Request.Context(), "token rejected",
				"request_id", GetRequestID(c),
				"error", err.Error(),
			)
			msg := "Invalid token"
			if errs.Is(err, jwt.ErrExpiredToken) {
				msg = "Token expired"
			}
			httperr.AbortWithCode(c, http.StatusUnauthorized, err, "Unauthenticated", msg, nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	need, known := roleRank[minRole]
	if !known {
		panic("RequireRoleAtLeast: unknown role " + string(minRole))
	}
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortInternal(c, errAuthOrder)
			return
		}
		if roleRank[role] < need {
			httperr.AbortWithCode(c, http.StatusForbidden,
				errs.Wrapf(errInsufficientRole, "%s below %s", role, minRole),
				"Forbidden", "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	v, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}
