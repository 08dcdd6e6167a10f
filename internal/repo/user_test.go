package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

func userFixture() domain.User {
	return domain.User{
		Username:     "porteiro1",
		Name:         "Porteiro Um",
		Role:         domain.RolePorteiro,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := r.GetByUsername(ctx, "porteiro1")
	require.NoError(t, err)
	assert.Equal(t, created, byName)
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	_, err = r.Create(ctx, userFixture())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_Update(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	created.Name = "Porteiro Renomeado"
	created.Role = domain.RoleAdmin
	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Porteiro Renomeado", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestUserRepo_Update_UsernameTaken(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	other := userFixture()
	other.Username = "porteiro2"
	created, err := r.Create(ctx, other)
	require.NoError(t, err)

	created.Username = "porteiro1"
	_, err = r.Update(ctx, created)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_Delete(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestUserRepo_CountByRole(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	n, err := r.CountByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	admin := userFixture()
	admin.Username = "chefe"
	admin.Role = domain.RoleAdmin
	_, err = r.Create(ctx, admin)
	require.NoError(t, err)
	_, err = r.Create(ctx, userFixture())
	require.NoError(t, err)

	n, err = r.CountByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
