package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

func TestSettingsRepo_Get_SeededRow(t *testing.T) {
	r := repo.NewSettingsRepo(newTestTx(t))

	got, err := r.Get(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got.ServerIP, "migration seeds an empty row")
}

func TestSettingsRepo_Update(t *testing.T) {
	r := repo.NewSettingsRepo(newTestTx(t))
	ctx := context.Background()

	updated, err := r.Update(ctx, domain.Settings{
		ServerIP:    "192.168.0.10",
		ServerPort:  "3000",
		BackendPort: "8000",
	})
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.10", updated.ServerIP)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated.ServerIP, got.ServerIP)
	assert.Equal(t, updated.ServerPort, got.ServerPort)
	assert.Equal(t, updated.BackendPort, got.BackendPort)
}
