package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeywordsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTable_EmptyPath_ReturnsDefaults(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)

	assert.True(t, table.Match(CategorySuicidalIdeation, "думаю о суициде"))
}

func TestLoadTable_OverridesCategory(t *testing.T) {
	path := writeKeywordsFile(t, `
medication:
  - "ноотроп"
`)

	table, err := LoadTable(path)
	require.NoError(t, err)

	// 覆盖后的词表生效，旧词表不再命中
	assert.True(t, table.Match(CategoryMedication, "посоветуйте ноотроп"))
	assert.False(t, table.Match(CategoryMedication, "какие таблетки пить"))

	// 未覆盖的类别保持内置词表
	assert.True(t, table.Match(CategorySuicidalIdeation, "думаю о суициде"))
}

func TestLoadTable_RegexEntries(t *testing.T) {
	path := writeKeywordsFile(t, `
panic_like:
  - "regex:не\\s+могу\\s+дышать"
`)

	table, err := LoadTable(path)
	require.NoError(t, err)

	assert.True(t, table.Match(CategoryPanicLike, "я не  могу дышать"))
	assert.False(t, table.Match(CategoryPanicLike, "паника")) // 内置词被替换
}

func TestLoadTable_UnknownCategory(t *testing.T) {
	path := writeKeywordsFile(t, `
unknown_category:
  - "что-то"
`)

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keyword category")
}

func TestLoadTable_EmptyCategory(t *testing.T) {
	path := writeKeywordsFile(t, `
violence: []
`)

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty keyword list")
}

func TestLoadTable_InvalidRegex(t *testing.T) {
	path := writeKeywordsFile(t, `
violence:
  - "regex:[unclosed"
`)

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable("/nonexistent/keywords.yaml")
	require.Error(t, err)
}
