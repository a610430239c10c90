package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStoreLoadMissingFile(t *testing.T) {
	store := NewMapStore(filepath.Join(t.TempDir(), "brands_ru.json"))
	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Len())
}

func TestMapStoreLoadInvalidJSONStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands_ru.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewMapStore(path)
	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Len())
}

func TestMapStoreSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "brands_ru.json")
	store := NewMapStore(path)
	store.addMissing("dolce gabbana", "Дольче & Габбана")
	store.addMissing("gucci", "Гуччи")
	require.NoError(t, store.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"dolce gabbana\": \"Дольче & Габбана\",\n  \"gucci\": \"Гуччи\"\n}\n", string(data))

	reloaded := NewMapStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, store.Entries(), reloaded.Entries())
}

func TestSyncAddsOnlyMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands_ru.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gucci": "Гуччи"}`), 0644))

	store := NewMapStore(path)
	require.NoError(t, store.Load())

	added, err := Sync(store, []string{"Gucci", "Prada", "Miu-Miu", "miu miu", "  ", "Гуччи"})
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	entries := store.Entries()
	assert.Equal(t, "Гуччи", entries["gucci"], "existing values must not change")
	assert.Equal(t, "Прада", entries["prada"])
	assert.Equal(t, "Миу Миу", entries["miu miu"])
	assert.Equal(t, "Гуччи", entries["гуччи"])

	reloaded := NewMapStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, entries, reloaded.Entries())
}

func TestSyncWithoutChangesDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands_ru.json")
	store := NewMapStore(path)

	added, err := Sync(store, []string{"", " - "})
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.NoFileExists(t, path)
}

func TestSyncMonotonic(t *testing.T) {
	store := NewMapStore(filepath.Join(t.TempDir(), "brands_ru.json"))
	brands := []string{"Gucci", "Prada", "Tom Ford"}

	_, err := Sync(store, brands)
	require.NoError(t, err)
	before := store.Entries()

	added, err := Sync(store, append(brands, "Celine"))
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	after := store.Entries()
	for k, v := range before {
		assert.Equal(t, v, after[k])
	}
	for _, b := range append(brands, "Celine") {
		assert.Contains(t, after, Normalize(b))
	}
}
