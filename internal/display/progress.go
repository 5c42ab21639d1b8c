package display

import (
	"fmt"
	"io"
	"path/filepath"
)

// ProgressIndicator prints one line per validated task file
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int
	current    int
	failed     int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		totalFiles: total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Validating task files:\n")
}

// Step displays [N/Total] filename, green when ok and red otherwise
func (p *ProgressIndicator) Step(filename string, ok bool) {
	p.current++
	basename := filepath.Base(filename)
	if ok {
		fmt.Fprintf(p.writer, "\x1b[32m  [%d/%d] %s\x1b[0m\n", p.current, p.totalFiles, basename)
		return
	}
	p.failed++
	fmt.Fprintf(p.writer, "\x1b[31m  [%d/%d] %s\x1b[0m\n", p.current, p.totalFiles, basename)
}

// Failed returns the number of failed steps so far
func (p *ProgressIndicator) Failed() int {
	return p.failed
}

// Complete displays the summary line
func (p *ProgressIndicator) Complete() {
	if p.failed == 0 {
		fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Validated %d task files\n", p.totalFiles)
		return
	}
	fmt.Fprintf(p.writer, "\x1b[31m✗\x1b[0m %d of %d task files failed validation\n", p.failed, p.totalFiles)
}
