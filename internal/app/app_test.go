package app

import (
	"context"
	"testing"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/tests/testutil"
)

// The command returned by persist runs on a goroutine, so it must
// carry a detached snapshot; mutations made before the command
// executes must not be written.
func TestPersistSnapshotsListState(t *testing.T) {
	s := testutil.NewTestStore(t)
	project, err := s.EnsureProject(context.Background(), "inbox")
	if err != nil {
		t.Fatal(err)
	}

	list := engine.New()
	list.Add("first")
	m := New(list, s, project.ID, project.Name)

	cmd := m.persist()
	list.Add("second")

	raw := cmd()
	msg, ok := raw.(taskSavedMsg)
	if !ok {
		t.Fatalf("message type %T", raw)
	}
	if msg.err != nil {
		t.Fatalf("persist: %v", msg.err)
	}

	loaded, err := s.LoadTasks(context.Background(), project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 {
		t.Errorf("persisted %d tasks, want 1", loaded.Len())
	}
	if got, err := loaded.Get(1); err != nil || got.Description != "first" {
		t.Errorf("loaded task = %+v, %v", got, err)
	}
}
