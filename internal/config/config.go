// Package config provides configuration types and defaults for mdpad.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/mdpad/internal/editor"
	"github.com/zjrosen/mdpad/internal/history"
	"github.com/zjrosen/mdpad/internal/log"
	"github.com/zjrosen/mdpad/internal/tracing"
)

// Config holds all configuration options for mdpad.
type Config struct {
	Editor  EditorConfig   `mapstructure:"editor"`
	History history.Config `mapstructure:"history"`
	UI      UIConfig       `mapstructure:"ui"`
	Render  RenderConfig   `mapstructure:"render"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// EditorConfig holds the editor widget defaults.
type EditorConfig struct {
	LineNum     bool   `mapstructure:"line_num"`
	FontSize    string `mapstructure:"font_size"` // Forwarded to HTML hosts; the terminal ignores it
	Placeholder string `mapstructure:"placeholder"`
	Disabled    bool   `mapstructure:"disabled"`
}

// Options builds editor options seeded with value.
func (e EditorConfig) Options(value string) editor.Options {
	return editor.Options{
		Value:       value,
		LineNum:     e.LineNum,
		FontSize:    e.FontSize,
		Disabled:    e.Disabled,
		Placeholder: e.Placeholder,
	}
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light", "notty" or "auto"
	Preview       bool   `mapstructure:"preview"`        // Show the rendered preview pane
	Watch         bool   `mapstructure:"watch"`          // Reload the document when it changes on disk
}

// RenderConfig holds render cache options.
type RenderConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	opts := editor.DefaultOptions()
	return Config{
		Editor: EditorConfig{
			LineNum:     opts.LineNum,
			FontSize:    opts.FontSize,
			Placeholder: opts.Placeholder,
			Disabled:    opts.Disabled,
		},
		History: history.DefaultConfig(),
		UI: UIConfig{
			MarkdownStyle: "dark",
			Preview:       true,
			Watch:         true,
		},
		Render: RenderConfig{
			CacheTTL: 5 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateHistory(cfg.History); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if cfg.Render.CacheTTL < 0 {
		return fmt.Errorf("render.cache_ttl must not be negative, got %v", cfg.Render.CacheTTL)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateHistory checks history limits.
func ValidateHistory(h history.Config) error {
	if h.MaxEntries < 1 {
		return fmt.Errorf("history.max_entries must be at least 1, got %d", h.MaxEntries)
	}
	if h.Debounce < 0 {
		return fmt.Errorf("history.debounce must not be negative, got %v", h.Debounce)
	}
	return nil
}

// ValidateUI checks UI options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light", "notty", "auto":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\", \"notty\" or \"auto\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# mdpad configuration

# Editor widget
editor:
  line_num: true               # Show the line number gutter
  font_size: 14px              # Passed to HTML hosts; ignored in the terminal
  placeholder: Start typing... # Shown while the buffer is empty
  disabled: false              # Open documents without accepting edits

# Undo/redo history
history:
  max_entries: 20   # Snapshots kept before the oldest is evicted
  debounce: 500ms   # Quiet period before typing becomes an undo step

# UI settings
ui:
  markdown_style: dark # Preview style: "dark" (default), "light", "notty" or "auto"
  preview: true        # Show the rendered preview pane (ctrl+p toggles and remembers)
  watch: true          # Reload the document when another program changes it

# Rendering
render:
  cache_ttl: 5m   # How long rendered output is reused for identical text

# Distributed tracing of editor operations
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: none                 # Export backend: none, stdout, otlp
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
