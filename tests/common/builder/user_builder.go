//go:build unit || e2e

package builder

import (
	"time"

	"arena-booking/internal/domain/user"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// UserBuilder produces users rows. Role stays a plain string so tests can
// store values the domain would reject.
type UserBuilder struct {
	row sqlc.Users
}

func NewUserBuilder() *UserBuilder {
	id := uuid.New()
	return &UserBuilder{row: sqlc.Users{
		ID:    id,
		Email: "player-" + id.String()[:8] + "@example.com",
		Name:  "Player",
		Role:  user.RoleCustomer.String(),
	}}
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.row.Role = role
	return b
}

func (b *UserBuilder) AsOperator() *UserBuilder {
	return b.WithRole(user.RoleOperator.String())
}

func (b *UserBuilder) BuildInfra() sqlc.Users {
	row := b.row
	row.CreatedAt = pgconv.TimeToPgtype(time.Now().UTC())
	return row
}
