package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var reports = map[string]bool{"next": true, "waiting": true}

func TestParseDefaultsToList(t *testing.T) {
	p := Parse([]string{"status:pending"}, reports)
	assert.Equal(t, "list", p.Verb)
	assert.Equal(t, "status:pending", p.FilterText)
	assert.Empty(t, p.Arguments)
}

func TestParseAddTakesArgumentsNotFilters(t *testing.T) {
	p := Parse([]string{"add", "buy", "milk"}, reports)
	assert.Equal(t, "add", p.Verb)
	assert.Equal(t, []string{"buy", "milk"}, p.Arguments)
	assert.Empty(t, p.FilterText)
}

func TestParseListFoldsTrailingIntoFilters(t *testing.T) {
	p := Parse([]string{"status:pending", "list", "+home"}, reports)
	assert.Equal(t, "list", p.Verb)
	assert.Equal(t, "status:pending +home", p.FilterText)
}

func TestParseReportNameExtracted(t *testing.T) {
	p := Parse([]string{"status:pending", "list", "next"}, reports)
	assert.Equal(t, "next", p.Report)
	assert.Equal(t, "status:pending", p.FilterText)
}

func TestParseReportLastOneWins(t *testing.T) {
	p := Parse([]string{"next", "list", "waiting"}, reports)
	assert.Equal(t, "waiting", p.Report)
}

func TestParseModAlias(t *testing.T) {
	p := Parse([]string{"3", "mod", "+urgent"}, reports)
	assert.Equal(t, "modify", p.Verb)
	assert.Equal(t, "3", p.FilterText)
	assert.Equal(t, []string{"+urgent"}, p.Arguments)
}

func TestParseCmdGetProjects(t *testing.T) {
	p := Parse([]string{"_cmd", "get", "projects"}, reports)
	assert.Equal(t, "_cmd get projects", p.Verb)
}
