//go:build unit

package readstore

import (
	"context"
	"testing"

	"arena-booking/internal/domain/user"
	"arena-booking/internal/infra"
	sqlc "arena-booking/internal/infra/sqlc/generated"
	"arena-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) GetUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func TestUserReadStore_FindByID(t *testing.T) {
	operator := builder.NewUserBuilder().AsOperator().BuildInfra()
	broken := builder.NewUserBuilder().WithRole("superuser").BuildInfra()

	tests := []struct {
		name       string
		id         uuid.UUID
		mockReturn sqlc.Users
		mockError  error
		wantRole   user.Role
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success",
			id:         operator.ID,
			mockReturn: operator,
			wantRole:   user.RoleOperator,
		},
		{
			name:       "user not found",
			id:         uuid.New(),
			mockReturn: sqlc.Users{},
			mockError:  pgx.ErrNoRows,
			wantKind:   infra.KindNotFound,
		},
		{
			name:       "unknown stored role",
			id:         broken.ID,
			mockReturn: broken,
			wantKind:   infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockUserReadQueries)
			q.On("GetUserByID", mock.Anything, mock.Anything, tt.id).Return(tt.mockReturn, tt.mockError)

			got, err := NewUserReadStore(q).FindByID(context.Background(), nil, tt.id)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, got.ID)
				assert.Equal(t, tt.wantRole, got.Role)
			}
			q.AssertExpectations(t)
		})
	}
}
