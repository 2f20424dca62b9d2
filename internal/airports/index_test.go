package airports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T, domestic, international string) string {
	t.Helper()
	dir := t.TempDir()
	if domestic != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DomesticFile), []byte(domestic), 0644))
	}
	if international != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, InternationalFile), []byte(international), 0644))
	}
	return dir
}

func TestLookupCaseInsensitive(t *testing.T) {
	dir := writeDataDir(t, `{"中国": {"Chengdu": ["CTU", "TFU"], "北京": ["PEK", "PKX"]}}`, "")
	idx := NewIndex(dir, nil)

	upper, ok := idx.Lookup("Chengdu")
	require.True(t, ok)
	lower, ok := idx.Lookup("chengdu")
	require.True(t, ok)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "CTU", lower)

	code, ok := idx.Lookup("北京")
	require.True(t, ok)
	assert.Equal(t, "PEK", code)
}

func TestLookupUnknownCity(t *testing.T) {
	dir := writeDataDir(t, `{"中国": {"chengdu": ["CTU"]}}`, "")
	idx := NewIndex(dir, nil)

	_, ok := idx.Lookup("atlantis")
	assert.False(t, ok)
}

func TestFirstCodeWins(t *testing.T) {
	domestic := `{"中国": {"shanghai": ["SHA", "PVG"]}}`
	international := `{"日本": {"shanghai": ["XXX"], "tokyo": ["HND", "NRT"]}}`
	dir := writeDataDir(t, domestic, international)
	idx := NewIndex(dir, nil)

	code, ok := idx.Lookup("shanghai")
	require.True(t, ok)
	assert.Equal(t, "SHA", code, "domestic file entry should not be overwritten")

	code, ok = idx.Lookup("tokyo")
	require.True(t, ok)
	assert.Equal(t, "HND", code)
}

func TestMissingFilesTolerated(t *testing.T) {
	idx := NewIndex(t.TempDir(), nil)

	_, ok := idx.Lookup("chengdu")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}

func TestMalformedFileSkipped(t *testing.T) {
	dir := writeDataDir(t, `not json at all`, `{"美国": {"new york": ["JFK", "EWR", "LGA"]}}`)
	idx := NewIndex(dir, nil)

	code, ok := idx.Lookup("New York")
	require.True(t, ok)
	assert.Equal(t, "JFK", code)
}

func TestEmptyCodeListSkipped(t *testing.T) {
	dir := writeDataDir(t, `{"中国": {"nowhere": [], "chengdu": ["CTU"]}}`, "")
	idx := NewIndex(dir, nil)

	_, ok := idx.Lookup("nowhere")
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Len())
}
