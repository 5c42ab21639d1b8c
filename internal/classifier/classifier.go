// Package classifier maps a task file's location under a base directory to
// its pipeline stage, target system, entity and task kind.
//
// The layout convention allows up to three folder levels between the base
// directory and the file, in any order. Each level may name a stage or a
// system through their aliases; one leftover level names the entity:
//
//	base/customers/01_extract/pg/get_customers.sql  -> entity=customers stage=EXTRACT system=POSTGRESQL
//	base/pg/load/orders/load_orders.sql             -> entity=orders stage=LOAD system=POSTGRESQL
//	base/shared.yaml                                -> common
package classifier

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/subtasks/internal/models"
)

// MaxDepth is the maximum number of folder levels between the base
// directory and a task file
const MaxDepth = 3

// Options tunes classification
type Options struct {
	// RequireSystem rejects any non-common file whose folders name no
	// system type, instead of accepting it with System unset
	RequireSystem bool
}

// Classifier turns file paths into classified subtasks. The zero value is
// ready to use with default options.
type Classifier struct {
	Options Options
}

// New creates a Classifier with the given options
func New(opts Options) *Classifier {
	return &Classifier{Options: opts}
}

// Classify builds a Subtask for filePath, which must lie inside baseDir.
// Content is left empty; loading is the caller's job.
func (c *Classifier) Classify(baseDir, filePath string) (*models.Subtask, error) {
	segments, err := folderSegments(baseDir, filePath)
	if err != nil {
		return nil, err
	}

	sub := models.NewSubtask(filePath)

	if len(segments) == 0 {
		sub.IsCommon = true
	} else if err := c.classifyFolders(sub, segments); err != nil {
		return nil, err
	}

	kind, ok := models.TaskKindFromExtension(sub.Extension())
	if !ok {
		return nil, &UnknownTaskKindError{Path: filePath, Extension: sub.Extension()}
	}
	sub.TaskKind = &kind

	return sub, nil
}

// classifyFolders assigns stage, system and entity from the folder segments
func (c *Classifier) classifyFolders(sub *models.Subtask, segments []string) error {
	if len(segments) > MaxDepth {
		return &StructureError{
			Path:     sub.Path,
			Segments: segments,
			Reason:   fmt.Sprintf("folder structure too deep (%d levels, max %d)", len(segments), MaxDepth),
		}
	}

	var unmatched []string
	for _, segment := range segments {
		if sub.Stage == nil {
			if stage, err := models.EtlStageFromAlias(segment); err == nil {
				sub.Stage = &stage
				continue
			}
		}
		if sub.System == nil {
			if system, err := models.SystemTypeFromAlias(segment); err == nil {
				sub.System = &system
				continue
			}
		}
		unmatched = append(unmatched, segment)
	}

	if len(unmatched) > 1 {
		return &StructureError{
			Path:     sub.Path,
			Segments: segments,
			Reason:   fmt.Sprintf("ambiguous entity / unrecognized folder: %s", strings.Join(unmatched, ", ")),
		}
	}
	if len(unmatched) == 1 {
		sub.Entity = unmatched[0]
	}

	if c.Options.RequireSystem && sub.System == nil {
		return &StructureError{
			Path:     sub.Path,
			Segments: segments,
			Reason:   "unknown system type: no folder names a system",
		}
	}
	return nil
}

// folderSegments returns the folder names between baseDir and the file,
// excluding the file name itself
func folderSegments(baseDir, filePath string) ([]string, error) {
	rel, err := filepath.Rel(filepath.Clean(baseDir), filepath.Clean(filePath))
	if err != nil {
		return nil, &StructureError{Path: filePath, Reason: fmt.Sprintf("cannot relate to base directory: %v", err)}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, &StructureError{Path: filePath, Reason: "file is not inside base directory " + baseDir}
	}

	dir := filepath.Dir(rel)
	if dir == "." {
		return nil, nil
	}
	return strings.Split(dir, string(filepath.Separator)), nil
}
