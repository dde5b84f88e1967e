package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "__default", cfg.DefaultReport)
	assert.Contains(t, cfg.Reports, "__default")
}

func TestLoadParsesReportsAndCoefficients(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bee.toml")
	toml := `
[core]
default_report = "next"

[core.report.next]
filters = ["status:pending"]
columns = ["id", "summary"]
column_names = ["ID", "Summary"]
default = true

[[core.coefficients]]
field = "blocking"
coefficient = 5

[[core.coefficients]]
field = "tag"
value = "urgent"
coefficient = 20
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "next", cfg.DefaultReport)

	report, ok := cfg.Reports["next"]
	require.True(t, ok)
	assert.Equal(t, []string{"status:pending"}, report.Filters)
	assert.True(t, report.Default)

	coeffs := cfg.Coefficients()
	assert.Equal(t, 5, coeffs.Blocking)
	assert.Equal(t, 20, coeffs.TagValues["urgent"])
}

func TestLoadRejectsUnknownCoefficientField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bee.toml")
	toml := `
[core]
[[core.coefficients]]
field = "bogus"
coefficient = 1
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestReportNames(t *testing.T) {
	cfg := Default()
	names := cfg.ReportNames()
	assert.True(t, names["__default"])
}
