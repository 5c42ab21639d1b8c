package models

import (
	"fmt"
	"strings"
)

// aliasEntry is the static data behind one alias-table variant
type aliasEntry struct {
	name    string   // canonical lower-case name
	display string   // upper-case display form
	aliases []string // lookup aliases, stored lower-case
}

// AliasError reports a lookup that matched no variant of an alias table.
// The message format "Unknown <table> alias: <text>" is stable.
type AliasError struct {
	Table string // table name as it appears in the message, e.g. "system type"
	Alias string // text that was looked up
}

// Error implements the error interface for AliasError.
func (e *AliasError) Error() string {
	return fmt.Sprintf("Unknown %s alias: %s", e.Table, e.Alias)
}

// findAlias returns the index of the first entry whose alias set contains
// text, compared case-insensitively
func findAlias(table []aliasEntry, text string) (int, bool) {
	needle := strings.ToLower(text)
	for i, entry := range table {
		for _, alias := range entry.aliases {
			if alias == needle {
				return i, true
			}
		}
	}
	return 0, false
}

// findName returns the index of the entry whose canonical name equals text
func findName(table []aliasEntry, text string) (int, bool) {
	for i, entry := range table {
		if entry.name == text {
			return i, true
		}
	}
	return 0, false
}

// copyAliases hands out a copy so callers cannot mutate the tables
func copyAliases(entry aliasEntry) []string {
	out := make([]string, len(entry.aliases))
	copy(out, entry.aliases)
	return out
}
