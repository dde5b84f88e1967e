package action

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/uuid"

	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/task"
	"github.com/Nelyah/bee/internal/taskdata"
)

// editableTask is the narrow view of a task the edit verb round-trips
// through an external editor. Only these fields are ever read back; any
// other edit a user makes to the buffer is silently dropped.
type editableTask struct {
	UUID        uuid.UUID          `json:"uuid"`
	Summary     string             `json:"summary"`
	Tags        []string           `json:"tags"`
	Annotations []task.Annotation  `json:"annotations"`
	Project     string             `json:"project"`
}

func doEdit(ctx Context, printer Printer) (Context, error) {
	if len(ctx.Filtered) == 0 {
		printer.PrintMessage("No matching tasks.")
		return ctx, nil
	}
	snaps := snapshotAll(ctx.Filtered)

	editable := make([]editableTask, len(ctx.Filtered))
	for i, t := range ctx.Filtered {
		editable[i] = editableTask{
			UUID:        t.UUID,
			Summary:     t.Summary,
			Tags:        append([]string{}, t.Tags...),
			Annotations: append([]task.Annotation{}, t.Annotations...),
			Project:     t.ProjectName(),
		}
	}

	f, err := os.CreateTemp("", "bee-edit-*.json")
	if err != nil {
		return ctx, bedrrors.NewIOError("creating the edit buffer", err)
	}
	defer os.Remove(f.Name())

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(editable); err != nil {
		f.Close()
		return ctx, bedrrors.NewIOError("writing the edit buffer", err)
	}
	f.Close()

	editorBin := os.Getenv("EDITOR")
	if editorBin == "" {
		editorBin = "vim"
	}
	cmd := exec.Command(editorBin, f.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return ctx, bedrrors.NewIOError(fmt.Sprintf("launching editor %q", editorBin), err)
	}

	raw, err := os.ReadFile(f.Name())
	if err != nil {
		return ctx, bedrrors.NewIOError("reading back the edit buffer", err)
	}
	var edited []editableTask
	if err := json.Unmarshal(raw, &edited); err != nil {
		return ctx, bedrrors.NewParseError("the edited task buffer", err)
	}

	byUUID := make(map[uuid.UUID]editableTask, len(edited))
	for _, e := range edited {
		byUUID[e.UUID] = e
	}

	for _, t := range ctx.Filtered {
		e, ok := byUUID[t.UUID]
		if !ok {
			continue
		}
		summary := e.Summary
		props := task.Properties{
			Summary:     &summary,
			Annotations: e.Annotations,
		}
		if e.Project == "" {
			props.Project = &task.ProjectPatch{Clear: true}
		} else {
			props.Project = &task.ProjectPatch{Name: e.Project}
		}
		props.TagsAdd, props.TagsRemove = diffTags(t.Tags, e.Tags)

		if err := ctx.Data.Apply(t.UUID, props, ctx.Now); err != nil {
			return ctx, err
		}
	}

	if err := ctx.Data.Upkeep(ctx.Now, ctx.Coefficients); err != nil {
		return ctx, err
	}
	ctx.Data.PushUndo(taskdata.ActionUndo{Action: "Modify", Tasks: snaps})
	printer.PrintMessage(fmt.Sprintf("Edited %d task(s).", len(ctx.Filtered)))
	return ctx, nil
}

func diffTags(before, after []string) (add, remove []string) {
	beforeSet := make(map[string]bool, len(before))
	for _, t := range before {
		beforeSet[t] = true
	}
	afterSet := make(map[string]bool, len(after))
	for _, t := range after {
		afterSet[t] = true
	}
	for t := range afterSet {
		if !beforeSet[t] {
			add = append(add, t)
		}
	}
	for t := range beforeSet {
		if !afterSet[t] {
			remove = append(remove, t)
		}
	}
	return add, remove
}
