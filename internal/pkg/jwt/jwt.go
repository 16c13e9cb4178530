// Package jwt verifies the HS256 bearer tokens issued by the identity
// provider. The subject is the user id and the role travels as a private claim.
package jwt

import (
	"time"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/pkg/config"
	"arena-booking/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid token")
	ErrExpiredToken = errs.New("token expired")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errs.Wrapf(ErrInvalidToken, "subject %q", c.Subject)
	}
	return id, nil
}

type Service struct {
	secret   []byte
	issuer   string
	duration time.Duration
	parser   *jwt.Parser
}

func NewService(cfg config.JWTConfig) *Service {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Service{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		duration: cfg.Duration,
		parser:   jwt.NewParser(opts...),
	}
}

// GenerateToken issues a token for local tooling and tests.
func (s *Service) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	return s.GenerateTokenAt(userID, role, time.Now())
}

// GenerateTokenAt issues a token as if it was signed at issuedAt.
func (s *Service) GenerateTokenAt(userID uuid.UUID, role user.Role, issuedAt time.Time) (string, error) {
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.duration)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(err, "sign token")
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errs.Is(err, jwt.ErrTokenExpired):
		return nil, errs.Mark(errs.Wrap(err, "validate token"), ErrExpiredToken)
	case err != nil:
		return nil, errs.Mark(errs.Wrap(err, "validate token"), ErrInvalidToken)
	}
	return claims, nil
}
