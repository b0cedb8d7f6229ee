package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/zjrosen/mdpad/internal/config"
	"github.com/zjrosen/mdpad/internal/log"
)

// documentHost receives editor notifications for a document on disk.
// Saves write the Markdown (and optionally the rendered HTML) atomically.
type documentHost struct {
	path     string
	htmlPath string

	mu       sync.Mutex
	rendered string
	err      error
}

func newDocumentHost(path, htmlPath string) *documentHost {
	return &documentHost{path: path, htmlPath: htmlPath}
}

// OnChange keeps the latest rendered HTML.
func (h *documentHost) OnChange(_, rendered string) {
	h.mu.Lock()
	h.rendered = rendered
	h.mu.Unlock()
}

// OnSave writes the document, and the HTML when an output path is set.
func (h *documentHost) OnSave(value, rendered string) {
	err := config.WriteFileAtomic(h.path, []byte(value))
	if err == nil && h.htmlPath != "" {
		err = config.WriteFileAtomic(h.htmlPath, []byte(rendered))
	}
	if err != nil {
		log.ErrorErr(log.CatEditor, "save failed", err, "path", h.path)
	} else {
		log.Info(log.CatEditor, "saved", "path", h.path, "bytes", len(value))
	}

	h.mu.Lock()
	h.rendered = rendered
	h.err = err
	h.mu.Unlock()
}

// Err returns the outcome of the last save.
func (h *documentHost) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Rendered returns the most recent rendered HTML.
func (h *documentHost) Rendered() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rendered
}

// Load reads the document. A missing file is an empty document.
func (h *documentHost) Load() (string, error) {
	return loadDocument(h.path)
}

func loadDocument(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the document the user asked to edit
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
