package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/mdpad/internal/config"
	"github.com/zjrosen/mdpad/internal/editor"
	"github.com/zjrosen/mdpad/internal/history"
	"github.com/zjrosen/mdpad/internal/keys"
	"github.com/zjrosen/mdpad/internal/log"
	"github.com/zjrosen/mdpad/internal/paths"
	"github.com/zjrosen/mdpad/internal/pubsub"
	"github.com/zjrosen/mdpad/internal/render"
	"github.com/zjrosen/mdpad/internal/tracing"
	"github.com/zjrosen/mdpad/internal/ui/mdeditor"
	"github.com/zjrosen/mdpad/internal/watcher"
)

var darkBackground bool

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the editor.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	darkBackground = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "mdpad <file>",
	Short:   "A terminal Markdown editor",
	Long:    `A terminal Markdown editor with a live preview, debounced undo/redo and toolbar shortcuts for headings, links, images and code.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/mdpad/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (path from MDPAD_LOG, default debug.log)")
	rootCmd.Flags().String("html", "",
		"also write the rendered HTML to this path on save")
	rootCmd.Flags().Bool("read-only", false,
		"open the document without accepting edits")
	rootCmd.Flags().Bool("no-preview", false,
		"start with the preview pane hidden")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the document when it changes on disk")
}

// setDefaults registers every config key so env vars and Unmarshal see them.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("editor.line_num", d.Editor.LineNum)
	v.SetDefault("editor.font_size", d.Editor.FontSize)
	v.SetDefault("editor.placeholder", d.Editor.Placeholder)
	v.SetDefault("editor.disabled", d.Editor.Disabled)
	v.SetDefault("history.max_entries", d.History.MaxEntries)
	v.SetDefault("history.debounce", d.History.Debounce)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.preview", d.UI.Preview)
	v.SetDefault("ui.watch", d.UI.Watch)
	v.SetDefault("render.cache_ttl", d.Render.CacheTTL)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(paths.ExpandHome(cfgFile))
	} else {
		// Config lookup order:
		// 1. .mdpad/config.yaml (current directory)
		// 2. ~/.config/mdpad/config.yaml (user config)
		if _, err := os.Stat(paths.LocalConfig); err == nil {
			viper.SetConfigFile(paths.LocalConfig)
		} else {
			if dir := paths.UserConfigDir(); dir != "" {
				viper.AddConfigPath(dir)
			}
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at ~/.config/mdpad/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if defaultPath := userConfigPath(); defaultPath != "" {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func userConfigPath() string {
	dir := paths.UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	applyFlags(cmd, &cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	docPath, err := paths.ResolveDocument(args[0])
	if err != nil {
		return err
	}
	value, err := loadDocument(docPath)
	if err != nil {
		return err
	}
	readOnly, _ := cmd.Flags().GetBool("read-only")
	htmlPath, _ := cmd.Flags().GetString("html")
	if htmlPath != "" {
		htmlPath = paths.ExpandHome(htmlPath)
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "tracing shutdown failed", err)
		}
	}()

	events := pubsub.NewBroker[history.Event]()
	defer events.Close()

	host := newDocumentHost(docPath, htmlPath)
	opts := editorOptions(cfg.Editor, value, readOnly)
	input := mdeditor.NewInput(value)
	ctrl := editor.New(opts, render.NewCached(render.NewHTML(), cfg.Render.CacheTTL), input, host,
		editor.WithHistoryConfig(cfg.History),
		editor.WithHistoryOptions(history.WithBroker(events)),
		editor.WithTracer(tp.Tracer()),
	)
	defer ctrl.Close()

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = paths.LocalConfig
	}

	mcfg := mdeditor.Config{
		Controller:    ctrl,
		Input:         input,
		Keys:          keys.DefaultKeyMap(),
		Title:         filepath.Base(docPath),
		Preview:       previewFactory(markdownStyle(cfg.UI.MarkdownStyle), cfg.Render.CacheTTL),
		ShowPreview:   cfg.UI.Preview,
		HistoryEvents: events,
		SaveErr:       host.Err,
		OnPreviewToggle: func(shown bool) error {
			return config.SavePreview(configPath, shown)
		},
	}

	if cfg.UI.Watch {
		w, err := watcher.New(watcher.DefaultConfig(docPath))
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		changes, err := w.Start()
		if err != nil {
			// Editing still works without reloads.
			log.ErrorErr(log.CatWatcher, "watcher unavailable", err, "path", docPath)
			_ = w.Stop()
		} else {
			defer func() { _ = w.Stop() }()
			mcfg.Changes = changes
			mcfg.Load = host.Load
		}
	}

	zone.NewGlobal()
	model := mdeditor.New(mcfg)
	defer model.Close()

	log.Info(log.CatConfig, "mdpad starting", "document", docPath, "config", configPath, "readOnly", readOnly)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// initLogging enables the debug log via --debug or MDPAD_DEBUG.
func initLogging() (func(), error) {
	if os.Getenv("MDPAD_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("MDPAD_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "debug logging enabled", "logPath", logPath, "version", version)
	return cleanup, nil
}

// applyFlags folds the negated command-line toggles into cfg.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	if noPreview, _ := cmd.Flags().GetBool("no-preview"); noPreview {
		c.UI.Preview = false
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		c.UI.Watch = false
	}
}

// editorOptions builds controller options for a loaded document. A read-only
// editor carries the document as its fixed default value.
func editorOptions(ec config.EditorConfig, value string, readOnly bool) editor.Options {
	opts := ec.Options(value)
	if readOnly {
		opts.Value = ""
		opts.DefaultValue = value
		if value == "" {
			opts.Disabled = true
		}
	}
	return opts
}

// markdownStyle resolves "auto" against the background detected at startup.
func markdownStyle(style string) string {
	if style != "auto" {
		return style
	}
	if darkBackground {
		return "dark"
	}
	return "light"
}

// previewFactory builds cached glamour renderers for the preview pane.
func previewFactory(style string, ttl time.Duration) mdeditor.PreviewFactory {
	return func(width int) (render.Renderer, error) {
		t, err := render.NewTerminal(width, style)
		if err != nil {
			return nil, fmt.Errorf("creating %s preview renderer: %w", style, err)
		}
		return render.NewCached(t, ttl), nil
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
