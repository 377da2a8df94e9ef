package checks

import (
	"fmt"
	"reflect"
	"strings"

	"gallery-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the database against the models.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Version int64                  `json:"version"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies every model's table using its gorm tags as the source
// of truth. Only tags with a column name are checked, and types only when the
// tag carries one.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	for _, model := range models {
		t := reflect.TypeOf(model)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", t.Name())
		}
		table := tabler.TableName()

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		if len(actual) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("Table %s not found", table))
			report.Matched = false
			continue
		}

		tbl := compareTable(t, actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}
	return report, nil
}

func compareTable(t reflect.Type, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	columns := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		columns[col.Field] = col
	}

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		name := gormSetting(tag, "column")
		if name == "" {
			continue
		}

		col, exists := columns[name]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, name)
			tbl.Status = "error"
			continue
		}

		// Substring match tolerates int(11) for int and timestamp without time zone.
		if expected := strings.ToLower(gormSetting(tag, "type")); expected != "" && !strings.Contains(col.Type, expected) {
			tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", name, expected, col.Type))
			tbl.Status = "error"
		}
	}
	return tbl
}

func gormSetting(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
