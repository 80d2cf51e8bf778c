package cmd

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"db-compare/internal/engine"
	"db-compare/internal/schema"
	"db-compare/internal/source"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func setCompareConfig(dir string) {
	viper.Set(KeyDB1Path, filepath.Join(dir, "db1.db"))
	viper.Set(KeyDB2Path, filepath.Join(dir, "db2.db"))
	viper.Set(KeyTableName, "readings")
	viper.Set(KeyCol1Prefix, "db1")
	viper.Set(KeyCol2Prefix, "db2")
	viper.Set(KeyOutputPath, filepath.Join(dir, "out", "result.xlsx"))
}

func TestLoadConfig(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	setCompareConfig(dir)

	cfg, err := LoadConfig(compareKeys...)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Source1.Driver)
	assert.Equal(t, filepath.Join(dir, "db2.db"), cfg.Source2.DSN)
	assert.Equal(t, "readings", cfg.Table)
	assert.Equal(t, "db1", cfg.Labels.Left)
	assert.Equal(t, "db2", cfg.Labels.Right)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing db1", key: KeyDB1Path, val: ""},
		{name: "blank table", key: KeyTableName, val: "  "},
		{name: "missing prefix", key: KeyCol2Prefix, val: ""},
		{name: "missing output", key: KeyOutputPath, val: ""},
		{name: "bad table", key: KeyTableName, val: "readings;--"},
		{name: "equal prefixes", key: KeyCol2Prefix, val: "db1"},
		{name: "not xlsx", key: KeyOutputPath, val: "result.csv"},
		{name: "bad scheme", key: KeyDB2Path, val: "mongodb://h/db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			setCompareConfig(t.TempDir())
			viper.Set(tt.key, tt.val)

			_, err := LoadConfig(compareKeys...)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestLoadConfig_OnlyPathsForTables(t *testing.T) {
	resetViper(t)
	viper.Set(KeyDB1Path, "a.db")
	viper.Set(KeyDB2Path, "b.db")

	_, err := LoadConfig()
	assert.NoError(t, err)
}

func TestLoadINI(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[PATHS]
DB1_PATH = data/db1.db
db2_path = postgres://u:p@localhost/app
output_path = out.xlsx

[tables]
table_name = readings

[columns]
col1_prefix = db1
col2_prefix = db2
`), 0o644))

	values, err := loadINI(path)
	require.NoError(t, err)
	require.NoError(t, viper.MergeConfigMap(values))

	assert.Equal(t, "data/db1.db", viper.GetString(KeyDB1Path))
	assert.Equal(t, "postgres://u:p@localhost/app", viper.GetString(KeyDB2Path))
	assert.Equal(t, "readings", viper.GetString(KeyTableName))
	assert.Equal(t, "db2", viper.GetString(KeyCol2Prefix))

	_, err = loadINI(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func writeSQLite(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
}

func compareFixture(t *testing.T) *Config {
	t.Helper()
	resetViper(t)
	dir := t.TempDir()
	setCompareConfig(dir)
	writeSQLite(t, filepath.Join(dir, "db1.db"),
		`CREATE TABLE readings (ts TEXT, a TEXT, b INTEGER)`,
		`INSERT INTO readings VALUES ('t1', 'x', 1), ('t2', 'y', 2)`,
		`CREATE TABLE extra (id INTEGER)`,
	)
	writeSQLite(t, filepath.Join(dir, "db2.db"),
		`CREATE TABLE readings (ts TEXT, a TEXT, b INTEGER)`,
		`INSERT INTO readings VALUES ('t1', 'x', 9), ('t2', 'z', 2)`,
	)
	cfg, err := LoadConfig(compareKeys...)
	require.NoError(t, err)
	return cfg
}

func TestRunCompare(t *testing.T) {
	color.NoColor = true
	cfg := compareFixture(t)
	var out bytes.Buffer

	require.NoError(t, runCompare(&out, cfg, false))

	assert.Equal(t, `Overall Matching Percentage: 50.00%
Total Number of Compared Cells: 4
Column Matching Percentages and Counts:
a: 50.00% (Matched: 1 out of 2)
b: 50.00% (Matched: 1 out of 2)
Comparison result saved to: `+cfg.OutputPath+"\n", out.String())

	f, err := excelize.OpenFile(cfg.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ts", "a_db1", "a_db2", "a_Comparison", "b_db1", "b_db2", "b_Comparison"}, rows[0])
	assert.Equal(t, []string{"t1", "x", "x", "Correct", "1", "9", "FALSCH"}, rows[1])
}

func TestRunCompare_MissingTable(t *testing.T) {
	cfg := compareFixture(t)
	cfg.Table = "extra"

	err := runCompare(&bytes.Buffer{}, cfg, false)

	var notFound *source.TableNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, cfg.Source2.String(), notFound.Location)
	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCompare_SchemaMismatch(t *testing.T) {
	cfg := compareFixture(t)
	writeSQLite(t, cfg.Source2.DSN, `ALTER TABLE readings ADD COLUMN c TEXT`)

	err := runCompare(&bytes.Buffer{}, cfg, false)

	var mismatch *schema.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"c"}, mismatch.OnlyRight)
}

func TestRunCompare_NoOverlapStillWritesReport(t *testing.T) {
	color.NoColor = true
	cfg := compareFixture(t)
	writeSQLite(t, cfg.Source2.DSN, `UPDATE readings SET ts = ts || '-other'`)
	var out bytes.Buffer

	require.NoError(t, runCompare(&out, cfg, false))
	assert.Contains(t, out.String(), "Overall Matching Percentage: 0.00%")
	assert.Contains(t, out.String(), "Total Number of Compared Cells: 0")

	f, err := excelize.OpenFile(cfg.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Matching Percentage", rows[1][0])
	assert.Equal(t, "0.00%", rows[1][3])
}

func TestRunTables(t *testing.T) {
	cfg := compareFixture(t)
	var out bytes.Buffer

	require.NoError(t, runTables(&out, cfg))
	assert.Contains(t, out.String(), "extra")
	assert.Contains(t, out.String(), ": only source 1")
	assert.Regexp(t, `readings\s+: both`, out.String())
}

func TestRunSeedThenCompare(t *testing.T) {
	color.NoColor = true
	resetViper(t)
	dir := t.TempDir()
	setCompareConfig(dir)
	cfg, err := LoadConfig(compareKeys...)
	require.NoError(t, err)

	var out bytes.Buffer
	opts := engine.SeedOptions{Table: cfg.Table, Count: 10, Seed: 7}
	require.NoError(t, runSeed(&out, cfg, opts, false))
	assert.Contains(t, out.String(), "Seed Report")
	assert.Contains(t, out.String(), "10 rows (Target: 10)")

	out.Reset()
	require.NoError(t, runCompare(&out, cfg, false))
	assert.Contains(t, out.String(), "Overall Matching Percentage: 100.00%")
}
