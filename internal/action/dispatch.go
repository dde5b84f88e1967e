package action

import "fmt"

// Verb names one of the fixed action-engine states. internal/cmdline is
// responsible for mapping CLI aliases (e.g. "mod") onto these.
type Verb string

const (
	Add            Verb = "add"
	Annotate       Verb = "annotate"
	Delete         Verb = "delete"
	Done           Verb = "done"
	Modify         Verb = "modify"
	Start          Verb = "start"
	Stop           Verb = "stop"
	Edit           Verb = "edit"
	Info           Verb = "info"
	List           Verb = "list"
	Export         Verb = "export"
	Help           Verb = "help"
	Undo           Verb = "undo"
	CmdGetProjects Verb = "_cmd get projects"
	CmdGetTags     Verb = "_cmd get tags"
)

// Func is the shape every verb implementation has: it receives the bound
// context and a printer, and returns the context as it stands after
// execution (TaskData is mutated through its pointer, so this is really a
// report of what happened more than a genuinely new state, but it keeps
// the call sites uniform and matches how the original action trait threads
// its results back to the caller).
type Func func(ctx Context, printer Printer) (Context, error)

var table = map[Verb]Func{
	Add:            doAdd,
	Annotate:       doAnnotate,
	Delete:         doDelete,
	Done:           doDone,
	Modify:         doModify,
	Start:          doStart,
	Stop:           doStop,
	Edit:           doEdit,
	Info:           doInfo,
	List:           doList,
	Export:         doExport,
	Help:           doHelp,
	Undo:           doUndo,
	CmdGetProjects: doCmdGetProjects,
	CmdGetTags:     doCmdGetTags,
}

// Dispatch runs the verb's implementation against ctx.
func Dispatch(verb Verb, ctx Context, printer Printer) (Context, error) {
	fn, ok := table[verb]
	if !ok {
		return ctx, fmt.Errorf("unknown verb %q", verb)
	}
	return fn(ctx, printer)
}

// ArgumentsAsFilters reports whether the verb's trailing CLI tokens should
// be folded into the filter expression (true) or kept as the verb's own
// argument text (false) -- the table internal/cmdline consults while
// splitting argv.
func ArgumentsAsFilters(v Verb) bool {
	switch v {
	case Edit, Info, List, Export:
		return true
	default:
		return false
	}
}
