package models

import "fmt"

// SystemType is the data platform a task runs against. Its numeric value
// is the stable identifier returned by ID.
type SystemType int

const (
	SystemClickhouse SystemType = iota
	SystemDuckdb
	SystemMySQL
	SystemOracleDB
	SystemPostgreSQL
	SystemSQLite
	SystemSqlServer
	SystemVertica
	SystemOther
)

var systemTypeTable = []aliasEntry{
	SystemClickhouse: {name: "clickhouse", display: "CLICKHOUSE", aliases: []string{"clickhouse", "click", "ch"}},
	SystemDuckdb:     {name: "duckdb", display: "DUCKDB", aliases: []string{"duckdb", "duck", "ddb"}},
	SystemMySQL:      {name: "mysql", display: "MYSQL", aliases: []string{"mysql"}},
	SystemOracleDB:   {name: "oracle", display: "ORACLEDB", aliases: []string{"oracledb", "oracle", "plsql"}},
	SystemPostgreSQL: {name: "postgres", display: "POSTGRESQL", aliases: []string{"pg", "postgres", "pg_dwh", "postgres_db", "postgresdb"}},
	SystemSQLite:     {name: "sqlite", display: "SQLITE", aliases: []string{"sqlite"}},
	SystemSqlServer:  {name: "sqlserver", display: "SQLSERVER", aliases: []string{"sqlserver", "mssql"}},
	SystemVertica:    {name: "vertica", display: "VERTICA", aliases: []string{"vertica"}},
	SystemOther:      {name: "other", display: "OTHER", aliases: []string{"other", "unknown", "misc"}},
}

// AllSystemTypes returns every system type in table order
func AllSystemTypes() []SystemType {
	types := make([]SystemType, len(systemTypeTable))
	for i := range systemTypeTable {
		types[i] = SystemType(i)
	}
	return types
}

// SystemTypeFromAlias resolves text against every system type's aliases, ignoring case
func SystemTypeFromAlias(text string) (SystemType, error) {
	i, ok := findAlias(systemTypeTable, text)
	if !ok {
		return 0, &AliasError{Table: "system type", Alias: text}
	}
	return SystemType(i), nil
}

func (t SystemType) valid() bool {
	return t >= 0 && int(t) < len(systemTypeTable)
}

// ID returns the stable numeric identifier of the system type
func (t SystemType) ID() int {
	return int(t)
}

// Name returns the canonical lower-case name (e.g. "postgres")
func (t SystemType) Name() string {
	if !t.valid() {
		return "unknown"
	}
	return systemTypeTable[t].name
}

// String returns the upper-case display name (e.g. "POSTGRESQL")
func (t SystemType) String() string {
	if !t.valid() {
		return fmt.Sprintf("SystemType(%d)", int(t))
	}
	return systemTypeTable[t].display
}

// Aliases returns the lookup aliases of the system type
func (t SystemType) Aliases() []string {
	if !t.valid() {
		return nil
	}
	return copyAliases(systemTypeTable[t])
}

// MarshalText encodes the system type as its canonical name
func (t SystemType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid system type %d", int(t))
	}
	return []byte(t.Name()), nil
}

// UnmarshalText accepts the canonical name or any alias
func (t *SystemType) UnmarshalText(text []byte) error {
	if i, ok := findName(systemTypeTable, string(text)); ok {
		*t = SystemType(i)
		return nil
	}
	st, err := SystemTypeFromAlias(string(text))
	if err != nil {
		return err
	}
	*t = st
	return nil
}
