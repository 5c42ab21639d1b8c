// Package display renders user-facing CLI output: subtask tables, the
// validation progress line and warning blocks.
//
// # Subtask Tables
//
//	rows := display.SubtaskRows(mgr.BasePath(), mgr.GetTasks(filter))
//	display.RenderTable(os.Stdout, rows)
//
// Header cells are colored with fatih/color, which turns itself off when
// stdout is not a terminal.
//
// # Validation Progress
//
//	progress := display.NewProgressIndicator(os.Stdout, len(files))
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file, err == nil)
//	}
//	progress.Complete()
//
// # Warning Messages
//
//	warning := display.WarnInvalidFiles(failures)
//	warning.Display(os.Stderr)
//
// All functions accept io.Writer interfaces for testability.
package display
