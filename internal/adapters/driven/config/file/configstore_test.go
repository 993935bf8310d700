package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFile), store.Path())
	assert.NoFileExists(t, store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".parcels", ConfigFile), store.Path())
	assert.DirExists(t, filepath.Join(home, ".parcels"))
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b", "c")

	store, err := NewConfigStore(nested)

	require.NoError(t, err)
	assert.DirExists(t, nested)
	assert.Equal(t, filepath.Join(nested, ConfigFile), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(blocker, "sub"))
	assert.Error(t, err)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("fedex.api_key", "key-123"))
	require.NoError(t, store.Set("refresh.concurrency", 4))
	require.NoError(t, store.Set("carriers.requests_per_second", 2.5))
	require.NoError(t, store.Set("scheduler.enabled", true))

	assert.Equal(t, "key-123", store.GetString("fedex.api_key"))
	assert.Equal(t, 4, store.GetInt("refresh.concurrency"))
	assert.InDelta(t, 2.5, store.GetFloat("carriers.requests_per_second"), 1e-9)
	assert.InDelta(t, 4.0, store.GetFloat("refresh.concurrency"), 1e-9)
	assert.True(t, store.GetBool("scheduler.enabled"))

	// Mismatched types read as zero values.
	assert.Empty(t, store.GetString("refresh.concurrency"))
	assert.Zero(t, store.GetInt("fedex.api_key"))
	assert.Zero(t, store.GetFloat("fedex.api_key"))
	assert.False(t, store.GetBool("fedex.api_key"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("fedex.api_key", "key-123"))
	require.NoError(t, store.Set("fedex.secret_key", "secret-456"))
	require.NoError(t, store.Set("refresh.interval_minutes", 15))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[fedex]")
	assert.Contains(t, string(raw), "[refresh]")
	assert.NotContains(t, string(raw), `"fedex.api_key"`)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "key-123", reloaded.GetString("fedex.api_key"))
	assert.Equal(t, "secret-456", reloaded.GetString("fedex.secret_key"))
	assert.Equal(t, 15, reloaded.GetInt("refresh.interval_minutes"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[fedex]
api_key = "abc"
base_url = "https://apis-sandbox.fedex.com"

[carriers]
requests_per_second = 2
http_timeout_seconds = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "abc", store.GetString("fedex.api_key"))
	assert.Equal(t, "https://apis-sandbox.fedex.com", store.GetString("fedex.base_url"))
	assert.InDelta(t, 2.0, store.GetFloat("carriers.requests_per_second"), 1e-9)
	assert.Equal(t, 10, store.GetInt("carriers.http_timeout_seconds"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("fedex.secret_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
	require.NoError(t, store.Set("a.b", "c"))
	assert.Equal(t, "c", store.GetString("a.b"))
}

func TestConfigStore_LoadAfterFileRemoved(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("fedex.api_key", "key"))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())
	assert.Empty(t, store.GetString("fedex.api_key"))
}

func TestConfigStore_LoadInvalidKeepsValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("fedex.api_key", "key"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("[[[broken"), 0600))

	assert.Error(t, store.Load())
	assert.Equal(t, "key", store.GetString("fedex.api_key"))
}

func TestConfigStore_SetWriteError(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// A directory at the file path makes the write fail.
	require.NoError(t, os.Mkdir(store.Path(), 0700))
	assert.Error(t, store.Set("a", "b"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set("refresh.concurrency", i))
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("refresh.concurrency")
		}()
	}
	wg.Wait()

	_, ok := store.Get("refresh.concurrency")
	assert.True(t, ok)
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"fedex":   map[string]any{"api_key": "k", "secret_key": "s"},
		"refresh": map[string]any{"concurrency": int64(2)},
		"top":     true,
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"fedex.api_key":       "k",
		"fedex.secret_key":    "s",
		"refresh.concurrency": int64(2),
		"top":                 true,
	}, flat)

	assert.Equal(t, nested, nestMap(flat))
}

func TestNestMap_ValueWinsOverTable(t *testing.T) {
	nested := nestMap(map[string]any{"a": "value", "a.b": "shadowed"})
	assert.Equal(t, map[string]any{"a": "value"}, nested)
}
