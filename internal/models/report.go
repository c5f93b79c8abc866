package models

// ColumnType is the declared type of a report output column
type ColumnType string

// Report column types
const (
	ColumnString ColumnType = "string"
	ColumnInt    ColumnType = "int"
	ColumnFloat  ColumnType = "float"
)

// Column describes one output column of a report
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// ReportInfo describes a catalog entry for listing
type ReportInfo struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// ReportResult holds the full result set of one report run.
// Cells are string, int64, float64 or nil, per Columns.
type ReportResult struct {
	Report  string   `json:"report"`
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Count   int      `json:"count"`
}
