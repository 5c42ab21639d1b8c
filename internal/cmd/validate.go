package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/subtasks/internal/classifier"
	"github.com/harrison/subtasks/internal/display"
	"github.com/harrison/subtasks/internal/fileutil"
	"github.com/harrison/subtasks/internal/models"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [base-dir]",
		Short: "Check that every task file follows the folder convention",
		Long: `Classify every task file under the base directory and report all
files that cannot be classified, checking for:
  - More than three folder levels below the base directory
  - More than one folder that is neither a stage nor a system
  - Extensions that map to no task kind
  - Missing system folder (with --require-system)

Unlike list, validate keeps going after the first failure.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, firstArg(args), nil, nil)
			if err != nil {
				return err
			}
			defer s.Close()
			return validateTree(s, cmd.OutOrStdout())
		},
	}

	addDiscoveryFlags(cmd)

	return cmd
}

// validateTree classifies every scanned file independently and reports the
// failures as one warning block
func validateTree(s *settings, output io.Writer) error {
	base, err := filepath.Abs(s.cfg.BasePath)
	if err != nil {
		return fmt.Errorf("failed to resolve base path %s: %w", s.cfg.BasePath, err)
	}

	result, err := fileutil.ScanDirectory(base, fileutil.ScanOptions{
		Extensions:  models.AllExtensions(),
		ExcludeDirs: s.cfg.ExcludeDirs,
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", base, err)
	}
	for _, scanErr := range result.Errors {
		s.log.LogWarn(scanErr.Error())
	}

	c := s.newClassifier()
	progress := display.NewProgressIndicator(output, len(result.Files))
	progress.Start()

	var issues []display.FileIssue
	for _, file := range result.Files {
		_, err := c.Classify(base, file)
		progress.Step(file, err == nil)
		if err != nil {
			issues = append(issues, display.FileIssue{Path: relativeTo(base, file), Reason: issueReason(err)})
		}
	}
	progress.Complete()

	if len(issues) > 0 {
		display.WarnInvalidFiles(issues).Display(output)
		fmt.Fprintln(output)
		return fmt.Errorf("%d of %d task files failed validation", len(issues), len(result.Files))
	}
	return nil
}

// issueReason strips the path from typed classification errors
func issueReason(err error) string {
	var structErr *classifier.StructureError
	if errors.As(err, &structErr) {
		return structErr.Reason
	}
	var kindErr *classifier.UnknownTaskKindError
	if errors.As(err, &kindErr) {
		return fmt.Sprintf("unknown task kind for extension %q", kindErr.Extension)
	}
	return err.Error()
}

func relativeTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
