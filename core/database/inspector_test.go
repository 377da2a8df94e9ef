package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description VARCHAR(40))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "varchar(40)", colMap["description"])

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestListTablesAndCountRows(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	tables, err := ListTables(db)
	require.NoError(t, err)
	assert.Subset(t, tables, []string{"galleries", "users", "photos"})

	require.NoError(t, db.Exec("INSERT INTO users (id, handle, display_name) VALUES ('u1', 'alice', 'alice')").Error)
	count, err := CountRows(db, "users")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = CountRows(db, "missing_table")
	assert.Error(t, err)
}

func TestPostgresType(t *testing.T) {
	length := 255
	assert.Equal(t, "varchar(255)", postgresType("character varying", &length))
	assert.Equal(t, "integer", postgresType("integer", nil))
	assert.Equal(t, "timestamp without time zone", postgresType("timestamp without time zone", nil))
}
