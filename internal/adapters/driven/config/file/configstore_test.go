package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())
}

func TestConfigStore_SetWritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("interface.distance", 4.5))
	require.NoError(t, store.Set("interface.index", "brute"))
	require.NoError(t, store.Set("cache.backend", "sqlite"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[interface]")
	assert.Contains(t, string(data), "[cache]")
	assert.NotContains(t, string(data), "interface.distance")
}

func TestConfigStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("interface.distance", 5.0))
	require.NoError(t, store.Set("thresholds.path", "/data/thresholds.toml"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 5.0, reopened.GetFloat("interface.distance"))
	assert.Equal(t, "/data/thresholds.toml", reopened.GetString("thresholds.path"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[interface]\ndistance = 4\nindex = \"grid\"\n\n[cache]\nbackend = \"memory\"\nenabled = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 4.0, store.GetFloat("interface.distance"))
	assert.Equal(t, "grid", store.GetString("interface.index"))
	assert.Equal(t, "memory", store.GetString("cache.backend"))
	assert.True(t, store.GetBool("cache.enabled"))
}

func TestConfigStore_TypedGettersMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "text"))

	assert.Equal(t, 0.0, store.GetFloat("k"))
	assert.False(t, store.GetBool("k"))
	assert.Equal(t, "", store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.dir", "/tmp"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := store.Get("interface.distance")
	assert.False(t, ok)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[interface\ndistance ="), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_SetFailureRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Channels cannot be encoded as TOML.
	err = store.Set("interface.index", make(chan int))
	require.Error(t, err)

	_, ok := store.Get("interface.index")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("interface.distance", float64(i))
			_ = store.GetFloat("interface.distance")
		}()
	}
	wg.Wait()
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": "x",
		"c.f":   true,
	})

	assert.Equal(t, map[string]any{
		"a": 1,
		"c": map[string]any{
			"d": map[string]any{"e": "x"},
			"f": true,
		},
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"interface": map[string]any{"distance": 3.5},
		"top":       "v",
	}, "")

	assert.Equal(t, map[string]any{"interface.distance": 3.5, "top": "v"}, flat)
}
