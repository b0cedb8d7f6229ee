package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSavePreview_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".mdpad", "config.yaml")

	require.NoError(t, SavePreview(configPath, false))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ui:")
	assert.Contains(t, string(data), "preview: false")
}

func TestSavePreview_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# top comment
history:
  max_entries: 7
ui:
  markdown_style: light # keep me
  preview: true        # Show the rendered preview pane
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0644))

	require.NoError(t, SavePreview(configPath, false))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# top comment")
	assert.Contains(t, content, "max_entries: 7")
	assert.Contains(t, content, "markdown_style: light # keep me")
	assert.Contains(t, content, "preview: false")
	assert.Contains(t, content, "# Show the rendered preview pane")
	assert.NotContains(t, content, "preview: true")
}

func TestSavePreview_ReadableByViper(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))
	require.NoError(t, SavePreview(configPath, false))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.False(t, cfg.UI.Preview)
	assert.True(t, cfg.UI.Watch)
	assert.Equal(t, 20, cfg.History.MaxEntries)
}

func TestSaveSetting_ReplacesNonMappingParent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ui: nope\n"), 0644))

	err := SaveSetting(configPath, []string{"ui", "watch"}, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "watch: false")
	assert.NotContains(t, string(data), "nope")
}

func TestSaveSetting_Errors(t *testing.T) {
	dir := t.TempDir()

	err := SaveSetting(filepath.Join(dir, "a.yaml"), nil, &yaml.Node{})
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("ui: [unclosed"), 0644))
	err = SavePreview(invalid, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")

	list := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(list, []byte("- a\n- b\n"), 0644))
	err = SavePreview(list, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a mapping")
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.md")

	require.NoError(t, WriteFileAtomic(path, []byte("# one")))
	require.NoError(t, WriteFileAtomic(path, []byte("# two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}
