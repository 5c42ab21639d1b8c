package models

import "fmt"

// EtlStage is a named phase of an ETL pipeline. Its numeric value is the
// stable identifier returned by ID and must never be renumbered.
type EtlStage int

const (
	// StageSetup prepares targets before extraction (00_setup)
	StageSetup EtlStage = iota
	// StageExtract pulls data from sources (01_extract)
	StageExtract
	// StageTransform reshapes extracted data (02_transform)
	StageTransform
	// StageLoad writes data into targets (03_load)
	StageLoad
	// StageCleanup removes temporary artifacts (04_cleanup)
	StageCleanup
	// StagePostprocessing runs after the load completes (05_post_processing)
	StagePostprocessing
	// StageOther groups tasks that belong to no specific phase
	StageOther
)

var etlStageTable = []aliasEntry{
	StageSetup:          {name: "setup", display: "SETUP", aliases: []string{"00_setup", "setup", "s", "00"}},
	StageExtract:        {name: "extract", display: "EXTRACT", aliases: []string{"01_extract", "extract", "e", "01"}},
	StageTransform:      {name: "transform", display: "TRANSFORM", aliases: []string{"02_transform", "transform", "t", "02"}},
	StageLoad:           {name: "load", display: "LOAD", aliases: []string{"03_load", "load", "l", "03"}},
	StageCleanup:        {name: "cleanup", display: "CLEANUP", aliases: []string{"04_cleanup", "cleanup", "c", "04"}},
	StagePostprocessing: {name: "post_processing", display: "POSTPROCESSING", aliases: []string{"05_post_processing", "post_processing", "pp", "05"}},
	StageOther:          {name: "other", display: "OTHER", aliases: []string{"other", "misc", "unknown", "oth"}},
}

// AllEtlStages returns every stage in table order
func AllEtlStages() []EtlStage {
	stages := make([]EtlStage, len(etlStageTable))
	for i := range etlStageTable {
		stages[i] = EtlStage(i)
	}
	return stages
}

// EtlStageFromAlias resolves text against every stage's aliases, ignoring case
func EtlStageFromAlias(text string) (EtlStage, error) {
	i, ok := findAlias(etlStageTable, text)
	if !ok {
		return 0, &AliasError{Table: "ETL stage", Alias: text}
	}
	return EtlStage(i), nil
}

func (s EtlStage) valid() bool {
	return s >= 0 && int(s) < len(etlStageTable)
}

// ID returns the stable numeric identifier of the stage
func (s EtlStage) ID() int {
	return int(s)
}

// Name returns the canonical lower-case name (e.g. "post_processing")
func (s EtlStage) Name() string {
	if !s.valid() {
		return "unknown"
	}
	return etlStageTable[s].name
}

// String returns the upper-case display name (e.g. "EXTRACT")
func (s EtlStage) String() string {
	if !s.valid() {
		return fmt.Sprintf("EtlStage(%d)", int(s))
	}
	return etlStageTable[s].display
}

// Aliases returns the lookup aliases of the stage
func (s EtlStage) Aliases() []string {
	if !s.valid() {
		return nil
	}
	return copyAliases(etlStageTable[s])
}

// MarshalText encodes the stage as its canonical name
func (s EtlStage) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid ETL stage %d", int(s))
	}
	return []byte(s.Name()), nil
}

// UnmarshalText accepts the canonical name or any alias
func (s *EtlStage) UnmarshalText(text []byte) error {
	if i, ok := findName(etlStageTable, string(text)); ok {
		*s = EtlStage(i)
		return nil
	}
	stage, err := EtlStageFromAlias(string(text))
	if err != nil {
		return err
	}
	*s = stage
	return nil
}
