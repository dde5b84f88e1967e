// Package cmdline splits a bee command line into a filter expression, a
// verb, the verb's own argument tokens, and an optional report name,
// following the fixed alias table the original action set used.
package cmdline

import "strings"

// ParsedCommand is the result of splitting one command line.
type ParsedCommand struct {
	Verb       string
	FilterText string
	Arguments  []string
	Report     string
}

// verbAliases maps every recognized CLI token to its canonical verb name
// (see internal/action.Verb). "_cmd get projects"/"_cmd get tags" are
// three-token aliases handled separately by findVerb.
var verbAliases = map[string]string{
	"add":      "add",
	"annotate": "annotate",
	"delete":   "delete",
	"done":     "done",
	"modify":   "modify",
	"mod":      "modify",
	"start":    "start",
	"stop":     "stop",
	"edit":     "edit",
	"info":     "info",
	"list":     "list",
	"export":   "export",
	"help":     "help",
	"undo":     "undo",
}

// argumentsAsFiltersVerbs names verbs whose trailing tokens fold back into
// the filter expression rather than becoming the verb's own arguments.
var argumentsAsFiltersVerbs = map[string]bool{
	"edit":   true,
	"info":   true,
	"list":   true,
	"export": true,
}

// ArgumentsAsFilters reports the routing policy for one verb's trailing
// tokens. Verbs outside the fixed table (e.g. add, modify) default to
// false: their trailing tokens are argument/property text.
func ArgumentsAsFilters(verb string) bool {
	return argumentsAsFiltersVerbs[verb]
}

func findVerb(args []string) (verb string, start, count int, ok bool) {
	for i, a := range args {
		if a == "_cmd" && i+2 < len(args) && args[i+1] == "get" {
			switch args[i+2] {
			case "projects":
				return "_cmd get projects", i, 3, true
			case "tags":
				return "_cmd get tags", i, 3, true
			}
		}
		if v, found := verbAliases[a]; found {
			return v, i, 1, true
		}
	}
	return "", 0, 0, false
}

// extractReport pulls the last token matching a known report name out of
// tokens, returning the remaining tokens and the report name found (empty
// if none).
func extractReport(tokens []string, reportNames map[string]bool) ([]string, string) {
	var out []string
	report := ""
	for _, tok := range tokens {
		if reportNames[tok] {
			report = tok
			continue
		}
		out = append(out, tok)
	}
	return out, report
}

// Parse splits args (not including the program name) per the fixed rules:
// the first alias match splits the line into a filters part and a rest
// part; a token matching a configured report name is consumed wherever it
// appears (last occurrence wins); the verb's ArgumentsAsFilters policy
// decides whether rest becomes more filter text or becomes Arguments; and
// a line with no recognized verb defaults to "list" with everything
// treated as filter text.
func Parse(args []string, reportNames map[string]bool) ParsedCommand {
	verb, idx, count, ok := findVerb(args)

	var filtersPart, rest []string
	if ok {
		filtersPart = append([]string{}, args[:idx]...)
		rest = append([]string{}, args[idx+count:]...)
	} else {
		verb = "list"
		filtersPart = append([]string{}, args...)
	}

	filtersPart, report1 := extractReport(filtersPart, reportNames)
	rest, report2 := extractReport(rest, reportNames)
	report := report1
	if report2 != "" {
		report = report2
	}

	var arguments []string
	if !ok || ArgumentsAsFilters(verb) {
		filtersPart = append(filtersPart, rest...)
	} else {
		arguments = rest
	}

	return ParsedCommand{
		Verb:       verb,
		FilterText: strings.Join(filtersPart, " "),
		Arguments:  arguments,
		Report:     report,
	}
}
