package projects

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"timetracking/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRegistry(t *testing.T, content string) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return New(path)
}

func TestRegistry_MissingFileIsCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "projects.json")
	registry := New(path)

	names, err := registry.Names(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))
}

func TestRegistry_Names(t *testing.T) {
	registry := setupTestRegistry(t, `{"zeta": {}, "alpha": {}, "Mid": {}}`)

	names, err := registry.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Mid", "alpha", "zeta"}, names)
}

func TestRegistry_Exists(t *testing.T) {
	registry := setupTestRegistry(t, `{"proj1": {}}`)
	ctx := context.Background()

	tests := []struct {
		name     string
		project  string
		expected bool
	}{
		{"exact match", "proj1", true},
		{"different case", "PROJ1", false},
		{"prefix", "proj", false},
		{"unknown", "other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := registry.Exists(ctx, tt.project)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

func TestRegistry_Add(t *testing.T) {
	registry := setupTestRegistry(t, "")
	ctx := context.Background()

	require.NoError(t, registry.Add(ctx, "beta"))
	require.NoError(t, registry.Add(ctx, "alpha"))

	content, err := os.ReadFile(registry.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"alpha\": {},\n  \"beta\": {}\n}\n", string(content))

	exists, err := registry.Exists(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegistry_AddDuplicate(t *testing.T) {
	registry := setupTestRegistry(t, `{"proj1": {}}`)

	err := registry.Add(context.Background(), "proj1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDuplicate))
	assert.Contains(t, err.Error(), "project proj1 already defined")
}

func TestRegistry_WriteInvalidatesCache(t *testing.T) {
	registry := setupTestRegistry(t, `{"proj1": {}}`)
	ctx := context.Background()

	names, err := registry.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj1"}, names)

	// Changes made behind the cache are not seen until a write invalidates it
	require.NoError(t, os.WriteFile(registry.Path(), []byte(`{"proj1": {}, "proj2": {}}`), 0644))
	names, err = registry.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj1"}, names)

	require.NoError(t, registry.Add(ctx, "proj3"))
	names, err = registry.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj1", "proj3"}, names)
}

func TestRegistry_InvalidJSON(t *testing.T) {
	registry := setupTestRegistry(t, `{"proj1": `)

	_, err := registry.Names(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeRegistry))
	assert.Contains(t, errors.GetUserMessage(err), "not valid JSON")
}
