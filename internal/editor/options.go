package editor

// Options mirrors the widget's recognized configuration.
type Options struct {
	// DefaultValue, when set, makes the editor read-only with a fixed buffer.
	DefaultValue string `mapstructure:"default_value"`
	// Value seeds the editable buffer and its history.
	Value string `mapstructure:"value"`
	// LineNum shows the line-number gutter.
	LineNum bool `mapstructure:"line_num"`
	// FontSize is passed through to the host's layout.
	FontSize string `mapstructure:"font_size"`
	// Disabled rejects all edits.
	Disabled bool `mapstructure:"disabled"`
	// Placeholder is shown while the buffer is empty.
	Placeholder string `mapstructure:"placeholder"`
}

// DefaultOptions returns the widget defaults.
func DefaultOptions() Options {
	return Options{
		LineNum:     true,
		FontSize:    "14px",
		Placeholder: "Start typing...",
	}
}

// ReadOnly reports whether the buffer is fixed by DefaultValue.
func (o Options) ReadOnly() bool {
	return o.DefaultValue != ""
}
