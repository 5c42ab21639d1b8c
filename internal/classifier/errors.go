package classifier

import "fmt"

// StructureError reports a folder layout the classifier cannot map onto
// stage, system and entity: too many nested folders, or more than one
// folder that matches no alias.
type StructureError struct {
	Path     string   // File being classified
	Segments []string // Classifying folder segments between base and file
	Reason   string   // Human-readable cause
}

// Error implements the error interface for StructureError.
func (e *StructureError) Error() string {
	return fmt.Sprintf("incorrect folder structure for %s: %s", e.Path, e.Reason)
}

// UnknownTaskKindError reports a file whose extension no task kind claims.
type UnknownTaskKindError struct {
	Path      string // File being classified
	Extension string // Extension without the leading dot
}

// Error implements the error interface for UnknownTaskKindError.
func (e *UnknownTaskKindError) Error() string {
	return fmt.Sprintf("unknown task type for %s: extension %q", e.Path, e.Extension)
}
