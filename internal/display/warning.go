package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// FileIssue is one file that failed validation
type FileIssue struct {
	Path   string
	Reason string
}

// WarnInvalidFiles creates the warning printed by validate when task files
// break the layout convention
func WarnInvalidFiles(issues []FileIssue) Warning {
	files := make([]string, len(issues))
	for i, issue := range issues {
		files[i] = fmt.Sprintf("%s: %s", issue.Path, issue.Reason)
	}

	title := "1 task file does not follow the layout convention"
	if len(issues) != 1 {
		title = fmt.Sprintf("%d task files do not follow the layout convention", len(issues))
	}

	return Warning{
		Title:      title,
		Files:      files,
		Suggestion: "Use at most three folders (entity, stage, system) and a known extension; run 'subtasks aliases' for accepted names",
	}
}
