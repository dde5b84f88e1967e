package errors

import (
	"fmt"
	"strings"
)

// EnhancedError wraps an error with helpful suggestions and examples
type EnhancedError struct {
	Operation   string
	Cause       error
	Suggestion  string
	Example     string
	HelpCommand string
}

func (e *EnhancedError) Error() string {
	var parts []string

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	} else {
		parts = append(parts, fmt.Sprintf("Error in %s", e.Operation))
	}

	if e.Suggestion != "" {
		parts = append(parts, fmt.Sprintf("Suggestion: %s", e.Suggestion))
	}

	if e.Example != "" {
		parts = append(parts, fmt.Sprintf("Example: %s", e.Example))
	}

	if e.HelpCommand != "" {
		parts = append(parts, fmt.Sprintf("For more help: %s", e.HelpCommand))
	}

	return strings.Join(parts, "\n")
}

func (e *EnhancedError) Unwrap() error {
	return e.Cause
}

// NewParseError wraps a lexer/filter/property/date failure. Surfaced at
// parse time, before any mutation of the store has happened.
func NewParseError(context string, cause error) *EnhancedError {
	return &EnhancedError{
		Operation:   "parsing " + context,
		Cause:       cause,
		Suggestion:  "Check the filter or property expression for unbalanced parentheses or unknown keywords",
		HelpCommand: "bee help",
	}
}

// NewResolutionError wraps a failure to resolve a numeric id (or a
// depends_on identifier) to a UUID.
func NewResolutionError(context string, cause error) *EnhancedError {
	return &EnhancedError{
		Operation:   "resolving " + context,
		Cause:       cause,
		Suggestion:  "Run 'bee list' to see the current ids for live tasks",
		HelpCommand: "bee list",
	}
}

// NewTransitionError wraps an invalid status transition for a single task.
// Within a multi-task action these are reported per task and downgraded to
// a warning; the batch continues.
func NewTransitionError(taskSummary string, cause error) *EnhancedError {
	return &EnhancedError{
		Operation:  "transitioning task",
		Cause:      cause,
		Suggestion: fmt.Sprintf("Task %q is not in a state that allows this transition; skipping it", taskSummary),
	}
}

// NewInvariantError wraps an impossible state detected during upkeep, e.g.
// a DependsOn edge whose target is missing from both tasks and extra_tasks.
// Fatal.
func NewInvariantError(cause error) *EnhancedError {
	return &EnhancedError{
		Operation:   "restoring task data invariants",
		Cause:       cause,
		Suggestion:  "This indicates a corrupted data file; restore from a backup of bee-data.json",
		HelpCommand: "bee help",
	}
}

// NewIOError wraps a store read/write or editor invocation failure. Fatal
// for the invocation.
func NewIOError(operation string, cause error) *EnhancedError {
	return &EnhancedError{
		Operation:   operation,
		Cause:       cause,
		Suggestion:  "Check that the data directory is writable and that $EDITOR (if set) points to a real executable",
		HelpCommand: "bee help",
	}
}

// NewConfigError wraps invalid TOML or an undefined urgency coefficient
// field name.
func NewConfigError(cause error) *EnhancedError {
	return &EnhancedError{
		Operation:   "loading configuration",
		Cause:       cause,
		Suggestion:  "Check the [core] section of bee.toml for syntax errors or unknown coefficient fields",
		Example:     "[core]\ndefault_report = \"next\"\n\n[core.coefficients]\n# field = \"tag\" | \"depends\" | \"blocking\" | \"active_status\"",
		HelpCommand: "bee help",
	}
}
