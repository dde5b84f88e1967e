// Package store persists a TaskData aggregate to two flat JSON files under
// a resolved data directory, using whole-file atomic replacement so a
// crash mid-write can never leave a half-written store behind.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/task"
	"github.com/Nelyah/bee/internal/taskdata"
)

const (
	tasksFile = "bee-data.json"
	undosFile = "bee-logged-tasks.json"
)

// Store is the persistence boundary the action engine and app shell use.
type Store interface {
	LoadTasks() (*taskdata.TaskData, error)
	WriteTasks(d *taskdata.TaskData) error
	LoadUndos(lastCount int) ([]taskdata.ActionUndo, error)
	LogUndo(count int, updated []taskdata.ActionUndo) error
}

// JSONStore is the only Store implementation: two JSON files in a
// resolved data directory.
type JSONStore struct {
	// DataHomeOverride takes precedence over every environment probe when
	// set (the --data-home flag).
	DataHomeOverride string
}

// NewJSONStore builds a store, optionally overriding the resolved data
// directory.
func NewJSONStore(dataHomeOverride string) *JSONStore {
	return &JSONStore{DataHomeOverride: dataHomeOverride}
}

// dataDir resolves the directory holding both JSON files, probing in
// order: the override, BEE_DATA_HOME, XDG_DATA_HOME/bee, HOME/.local/share/bee,
// and finally the current directory.
func (s *JSONStore) dataDir() string {
	if s.DataHomeOverride != "" {
		return s.DataHomeOverride
	}
	if v := os.Getenv("BEE_DATA_HOME"); v != "" {
		return v
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "bee")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "bee")
	}
	return "."
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dataDir(), name)
}

// LoadTasks reads bee-data.json, or returns an empty TaskData if the file
// does not exist yet.
func (s *JSONStore) LoadTasks() (*taskdata.TaskData, error) {
	path := s.path(tasksFile)
	data := taskdata.New()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, bedrrors.NewIOError("reading "+path, err)
	}

	var tasks []*task.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, bedrrors.NewIOError("parsing "+path, err)
	}
	for _, t := range tasks {
		data.Tasks[t.UUID] = t
		if t.ID != nil {
			data.IDToUUID[*t.ID] = t.UUID
		}
	}
	return data, nil
}

// WriteTasks serializes every task in d.Tasks, sorted by date_created, to
// bee-data.json via atomic temp-file-plus-rename replacement.
func (s *JSONStore) WriteTasks(d *taskdata.TaskData) error {
	tasks := make([]*task.Task, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		tasks = append(tasks, t)
	}
	task.SortByCreation(tasks)
	return s.atomicWriteJSON(s.path(tasksFile), tasks)
}

// undoRecord is the on-disk shape of one ActionUndo entry.
type undoRecord struct {
	ActionType string       `json:"action_type"`
	Tasks      []*task.Task `json:"tasks"`
}

func (s *JSONStore) loadAllUndos() ([]taskdata.ActionUndo, error) {
	path := s.path(undosFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, bedrrors.NewIOError("reading "+path, err)
	}
	var records []undoRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, bedrrors.NewIOError("parsing "+path, err)
	}
	out := make([]taskdata.ActionUndo, len(records))
	for i, r := range records {
		out[i] = taskdata.ActionUndo{Action: r.ActionType, Tasks: r.Tasks}
	}
	return out, nil
}

// LoadUndos returns at most the last lastCount undo records on disk, oldest
// first. A negative lastCount returns every record.
func (s *JSONStore) LoadUndos(lastCount int) ([]taskdata.ActionUndo, error) {
	all, err := s.loadAllUndos()
	if err != nil {
		return nil, err
	}
	if lastCount >= 0 && lastCount < len(all) {
		all = all[len(all)-lastCount:]
	}
	return all, nil
}

// LogUndo merges updated into the on-disk undo log: if the log currently
// holds count entries or fewer, it is replaced wholesale by updated;
// otherwise updated is spliced in over the last count positions, so older
// history beyond that window is preserved.
func (s *JSONStore) LogUndo(count int, updated []taskdata.ActionUndo) error {
	existing, err := s.loadAllUndos()
	if err != nil {
		return err
	}

	var final []taskdata.ActionUndo
	if len(existing) <= count {
		final = updated
	} else {
		final = append([]taskdata.ActionUndo{}, existing[:len(existing)-count]...)
		final = append(final, updated...)
	}

	records := make([]undoRecord, len(final))
	for i, u := range final {
		records[i] = undoRecord{ActionType: u.Action, Tasks: u.Tasks}
	}
	return s.atomicWriteJSON(s.path(undosFile), records)
}

func (s *JSONStore) atomicWriteJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bedrrors.NewIOError("creating data directory "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".bee-*.tmp")
	if err != nil {
		return bedrrors.NewIOError("creating a temp file in "+dir, err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return bedrrors.NewIOError(fmt.Sprintf("writing %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		return bedrrors.NewIOError(fmt.Sprintf("closing %s", path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return bedrrors.NewIOError(fmt.Sprintf("replacing %s", path), err)
	}
	return nil
}
