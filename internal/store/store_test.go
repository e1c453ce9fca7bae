package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/tests/testutil"
)

func TestProjectCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateProject(ctx, model.Project{Name: "work"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.NextID != 1 {
		t.Errorf("created project = %+v", created)
	}

	got, err := s.GetProjectByName(ctx, "work")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got id %s, want %s", got.ID, created.ID)
	}

	if _, err := s.CreateProject(ctx, model.Project{Name: "work"}); err == nil {
		t.Error("duplicate name accepted")
	}

	if err := s.RenameProject(ctx, created.ID, "office"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := s.GetProjectByName(ctx, "work"); err == nil {
		t.Error("old name still resolves")
	}

	projects, err := s.GetProjects(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "office" {
		t.Errorf("projects = %+v", projects)
	}

	if err := s.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteProject(ctx, created.ID); err == nil {
		t.Error("double delete reported success")
	}
}

func TestEnsureProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.EnsureProject(ctx, "default")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := s.EnsureProject(ctx, "default")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("ensure created a second project: %s vs %s", first.ID, second.ID)
	}
}

func TestSaveAndLoadTasksRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project, err := s.EnsureProject(ctx, "default")
	if err != nil {
		t.Fatalf("ensure project: %v", err)
	}

	l := engine.New()
	a := l.Add("write report")
	l.SetPriority(a.ID, model.PriorityHigh)
	due := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	l.SetDueDate(a.ID, &due)
	l.SetCategory(a.ID, "work")
	l.SetRecurrence(a.ID, model.RecurrenceWeekly)
	sub, _ := l.AddSubtask(a.ID, "draft outline")
	l.Complete(sub.ID)
	c := l.Add("review")
	l.AddDependency(c.ID, a.ID)
	l.Remove(sub.ID)
	l.Add("") // empty descriptions are legal

	if err := s.SaveTasks(ctx, project.ID, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Len() != l.Len() {
		t.Fatalf("loaded %d tasks, want %d", loaded.Len(), l.Len())
	}
	if loaded.NextID() != l.NextID() {
		t.Errorf("next id = %d, want %d", loaded.NextID(), l.NextID())
	}

	want := l.Tasks()
	got := loaded.Tasks()
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Description != w.Description ||
			g.Completed != w.Completed || g.Priority != w.Priority ||
			g.Category != w.Category || g.Recurrence != w.Recurrence {
			t.Errorf("task %d mismatch:\n got %+v\nwant %+v", w.ID, g, w)
		}
		if (g.DueDate == nil) != (w.DueDate == nil) {
			t.Errorf("task %d due date presence mismatch", w.ID)
		} else if w.DueDate != nil && !g.DueDate.Equal(*w.DueDate) {
			t.Errorf("task %d due date = %v, want %v", w.ID, g.DueDate, w.DueDate)
		}
		if (g.ParentID == nil) != (w.ParentID == nil) {
			t.Errorf("task %d parent presence mismatch", w.ID)
		}
		if len(g.DependsOn) != len(w.DependsOn) {
			t.Errorf("task %d depends_on = %v, want %v", w.ID, g.DependsOn, w.DependsOn)
		}
	}

	// Id assignment continues past the loaded counter.
	next := loaded.Add("new after load")
	if next.ID != l.NextID() {
		t.Errorf("post-load id = %d, want %d", next.ID, l.NextID())
	}
}

func TestSaveTasksIsASnapshot(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project, _ := s.EnsureProject(ctx, "default")

	l := engine.New()
	l.Add("one")
	l.Add("two")
	if err := s.SaveTasks(ctx, project.ID, l); err != nil {
		t.Fatalf("first save: %v", err)
	}

	l.Remove(1)
	if err := s.SaveTasks(ctx, project.ID, l); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := s.LoadTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("stale rows survived the snapshot: %d tasks", loaded.Len())
	}
}

func TestSaveTasksUnknownProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	if err := s.SaveTasks(context.Background(), "no-such-id", engine.New()); err == nil {
		t.Error("expected error for unknown project")
	}
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project, _ := s.EnsureProject(ctx, "doomed")
	l := engine.New()
	l.Add("task")
	if err := s.SaveTasks(ctx, project.ID, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := s.LoadTasks(ctx, project.ID); err == nil {
		t.Error("loading a deleted project succeeded")
	}
}

// Two projects are fully independent lists with their own counters.
func TestProjectsAreIndependent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p1, _ := s.EnsureProject(ctx, "one")
	p2, _ := s.EnsureProject(ctx, "two")

	l1 := engine.New()
	l1.Add("a")
	l1.Add("b")
	l2 := engine.New()
	l2.Add("x")

	if err := s.SaveTasks(ctx, p1.ID, l1); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveTasks(ctx, p2.ID, l2); err != nil {
		t.Fatal(err)
	}

	got1, err := s.LoadTasks(ctx, p1.ID)
	if err != nil {
		t.Fatal(err)
	}
	got2, err := s.LoadTasks(ctx, p2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got1.Len() != 2 || got2.Len() != 1 {
		t.Errorf("lens = %d, %d; want 2, 1", got1.Len(), got2.Len())
	}
	if got1.NextID() != 3 || got2.NextID() != 2 {
		t.Errorf("next ids = %d, %d; want 3, 2", got1.NextID(), got2.NextID())
	}
}
