package checks

import (
	"fmt"
	"slices"

	"gallery-sync/core/database"

	"gorm.io/gorm"
)

// RecordsReport holds row counts per table.
type RecordsReport struct {
	Tables  []string         `json:"tables"`
	Counts  map[string]int64 `json:"counts"`
	Missing []string         `json:"missing"`
}

// CountRecords counts the rows of every expected table and lists the ones
// that do not exist.
func CountRecords(db *gorm.DB, tables ...string) (*RecordsReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	present, err := database.ListTables(db)
	if err != nil {
		return nil, err
	}

	report := &RecordsReport{Tables: present, Counts: make(map[string]int64), Missing: []string{}}
	for _, table := range tables {
		if !slices.Contains(present, table) {
			report.Missing = append(report.Missing, table)
			continue
		}
		n, err := database.CountRows(db, table)
		if err != nil {
			return nil, err
		}
		report.Counts[table] = n
	}
	return report, nil
}
