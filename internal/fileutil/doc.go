// Package fileutil discovers task files on disk and reads their content.
//
// ScanDirectory walks a base directory and returns every regular file whose
// extension belongs to a supplied set. ReadText loads the content of one of
// those files. Together they are the scanner and loader the manager
// composes with the classifier during discovery.
//
// # Scanning rules
//
//   - Extension matching is case-insensitive and tolerates a leading dot
//     (".SQL", "sql" and ".sql" all select get_customers.sql).
//   - Hidden directories (name starting with ".") are never entered.
//   - ExcludeDirs names further directories to skip (e.g. "node_modules").
//   - MaxDepth limits recursion (0 = unlimited, 1 = base directory only).
//   - Symlinks and other non-regular entries are ignored.
//   - Output paths are absolute and sorted, so discovery order is stable.
//
// Errors that only affect part of the tree (a subdirectory that cannot be
// read) are collected in ScanResult.Errors and the walk continues. A missing
// base directory, or a base path that is not a directory, fails the scan.
//
// # Usage
//
//	result, err := fileutil.ScanDirectory("/etl/tasks", fileutil.ScanOptions{
//	    Extensions:  []string{"sql", "py"},
//	    ExcludeDirs: []string{"archive"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    content, err := fileutil.ReadText(file)
//	    ...
//	}
package fileutil
