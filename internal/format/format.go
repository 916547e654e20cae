// Package format renders activity reports in the supported output styles.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// Format identifies an output style.
type Format string

// Supported output formats.
const (
	Plain    Format = "plain"
	Markdown Format = "markdown"
	JSON     Format = "json"
	HTML     Format = "html"
)

// Renderer turns an activity report into its final textual form.
type Renderer interface {
	Render(report *domain.ActivityReport) (string, error)
}

// New returns the renderer for the given format.
func New(f Format) (Renderer, error) {
	switch f {
	case Plain:
		return &PlainRenderer{}, nil
	case Markdown:
		return &MarkdownRenderer{}, nil
	case JSON:
		return &JSONRenderer{}, nil
	case HTML:
		return &HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", f)
	}
}

// Parse converts a user-supplied format name into a Format.
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain":
		return Plain, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "html":
		return HTML, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", name)
	}
}

// Detect infers the format from the output path's extension, falling back
// to the given format when the extension is missing or unknown.
func Detect(outputPath string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".md", ".markdown":
		return Markdown
	case ".txt":
		return Plain
	case ".json":
		return JSON
	case ".html", ".htm":
		return HTML
	default:
		return fallback
	}
}
