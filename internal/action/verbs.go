package action

import (
	"errors"
	"fmt"
	"strings"

	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/query"
	"github.com/Nelyah/bee/internal/task"
	"github.com/Nelyah/bee/internal/taskdata"
)

func parseProperties(ctx Context) (task.Properties, error) {
	text := strings.Join(ctx.Arguments, " ")
	p, err := query.NewPropertyParser(text, ctx.Now)
	if err != nil {
		return task.Properties{}, bedrrors.NewParseError("task properties", err)
	}
	props, err := p.Parse()
	if err != nil {
		return task.Properties{}, bedrrors.NewParseError("task properties", err)
	}
	return props, nil
}

func snapshotAll(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func doAdd(ctx Context, printer Printer) (Context, error) {
	props, err := parseProperties(ctx)
	if err != nil {
		return ctx, err
	}
	t, err := ctx.Data.AddTask(props, ctx.Now, task.StatusPending)
	if err != nil {
		return ctx, err
	}
	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	ctx.Data.PushUndo(taskdata.ActionUndo{Action: "Add", Tasks: []*task.Task{t.Clone()}})

	if t.ID != nil {
		printer.PrintMessage(fmt.Sprintf("Created task %d.", *t.ID))
	} else {
		printer.PrintMessage("Created task.")
	}
	return ctx, nil
}

func doAnnotate(ctx Context, printer Printer) (Context, error) {
	if len(ctx.Filtered) == 0 {
		printer.PrintMessage("No matching tasks.")
		return ctx, nil
	}
	text := strings.Join(ctx.Arguments, " ")
	snaps := snapshotAll(ctx.Filtered)
	for _, t := range ctx.Filtered {
		if err := ctx.Data.Apply(t.UUID, task.Properties{Annotation: &text}, ctx.Now); err != nil {
			return ctx, err
		}
	}
	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	ctx.Data.PushUndo(taskdata.ActionUndo{Action: "Modify", Tasks: snaps})
	printer.PrintMessage(fmt.Sprintf("Annotated %d task(s).", len(ctx.Filtered)))
	return ctx, nil
}

func transitionAll(ctx Context, printer Printer, verb string, mutate func(*task.Task)) (Context, error) {
	if len(ctx.Filtered) == 0 {
		printer.PrintMessage("No matching tasks.")
		return ctx, nil
	}
	// delete/done always snapshot every matched task, unconditionally.
	snaps := snapshotAll(ctx.Filtered)
	for _, t := range ctx.Filtered {
		mutate(t)
	}
	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	ctx.Data.PushUndo(taskdata.ActionUndo{Action: "Modify", Tasks: snaps})
	printer.PrintMessage(fmt.Sprintf("Marked %d task(s) as %s.", len(ctx.Filtered), verb))
	return ctx, nil
}

func doDelete(ctx Context, printer Printer) (Context, error) {
	return transitionAll(ctx, printer, "deleted", func(t *task.Task) { t.Delete(ctx.Now) })
}

func doDone(ctx Context, printer Printer) (Context, error) {
	return transitionAll(ctx, printer, "completed", func(t *task.Task) { t.Done(ctx.Now) })
}

func doModify(ctx Context, printer Printer) (Context, error) {
	if len(ctx.Filtered) == 0 {
		printer.PrintMessage("No matching tasks.")
		return ctx, nil
	}
	props, err := parseProperties(ctx)
	if err != nil {
		return ctx, err
	}
	snaps := snapshotAll(ctx.Filtered)
	for _, t := range ctx.Filtered {
		if err := ctx.Data.Apply(t.UUID, props, ctx.Now); err != nil {
			return ctx, err
		}
	}
	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	ctx.Data.PushUndo(taskdata.ActionUndo{Action: "Modify", Tasks: snaps})
	printer.PrintMessage(fmt.Sprintf("Modified %d task(s).", len(ctx.Filtered)))
	return ctx, nil
}

func activeStatusAll(ctx Context, printer Printer, active bool, verb string) (Context, error) {
	if len(ctx.Filtered) == 0 {
		printer.PrintMessage("No matching tasks.")
		return ctx, nil
	}
	var changed []*task.Task
	for _, t := range ctx.Filtered {
		before := t.Clone()
		if err := ctx.Data.Apply(t.UUID, task.Properties{ActiveStatus: &active}, ctx.Now); err != nil {
			if errors.Is(err, task.ErrInvalidTransition) {
				printer.PrintWarning(fmt.Sprintf("skipping task %q: %v", t.Summary, err))
				continue
			}
			return ctx, err
		}
		changed = append(changed, before)
	}
	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	if len(changed) > 0 {
		ctx.Data.PushUndo(taskdata.ActionUndo{Action: "Modify", Tasks: changed})
	}
	printer.PrintMessage(fmt.Sprintf("%s %d task(s).", verb, len(changed)))
	return ctx, nil
}

func doStart(ctx Context, printer Printer) (Context, error) {
	return activeStatusAll(ctx, printer, true, "Started")
}

func doStop(ctx Context, printer Printer) (Context, error) {
	return activeStatusAll(ctx, printer, false, "Stopped")
}

func doInfo(ctx Context, printer Printer) (Context, error) {
	for _, t := range ctx.Filtered {
		if err := printer.PrintTaskInfo(t); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

func doList(ctx Context, printer Printer) (Context, error) {
	return ctx, printer.PrintTaskList(ctx.Report, ctx.Filtered)
}

func doExport(ctx Context, printer Printer) (Context, error) {
	return ctx, printer.PrintJSON(ctx.Filtered)
}

func doHelp(ctx Context, printer Printer) (Context, error) {
	for _, line := range []string{
		"add <properties>      create a new task",
		"annotate <text>       append a note to matching tasks",
		"delete                mark matching tasks deleted",
		"done                  mark matching tasks completed",
		"modify|mod <patch>    apply a property patch to matching tasks",
		"start                 mark matching tasks active",
		"stop                  mark matching tasks pending",
		"edit                  edit matching tasks in $EDITOR",
		"info                  show full detail for matching tasks",
		"list                  print matching tasks as a table (default verb)",
		"export                print matching tasks as JSON",
		"undo                  revert the most recent change",
	} {
		printer.PrintMessage(line)
	}
	return ctx, nil
}

func doUndo(ctx Context, printer Printer) (Context, error) {
	undone := 0
	for {
		u, ok := ctx.Data.PopUndo()
		if !ok {
			break
		}
		switch u.Action {
		case "Add":
			for _, t := range u.Tasks {
				if cur, ok := ctx.Data.Tasks[t.UUID]; ok {
					cur.Delete(ctx.Now)
				}
			}
		case "Modify":
			for _, t := range u.Tasks {
				ctx.Data.Tasks[t.UUID] = t.Clone()
			}
		}
		undone++
	}
	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	printer.PrintMessage(fmt.Sprintf("Undid %d change(s).", undone))
	return ctx, nil
}
