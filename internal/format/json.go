package format

import (
	"encoding/json"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// JSONRenderer emits the report as indented JSON for piping into other
// tooling.
type JSONRenderer struct{}

// Render implements Renderer. The document carries no trailing newline; the
// output layer adds one when printing to stdout.
func (r *JSONRenderer) Render(report *domain.ActivityReport) (string, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
