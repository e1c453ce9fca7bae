package engine

import (
	"errors"
	"testing"
)

// chain builds a list with n tasks and a linear dependency chain
// 2 -> 1, 3 -> 2, and so on.
func chain(t *testing.T, n int) *List {
	t.Helper()
	l := New()
	for i := 0; i < n; i++ {
		l.Add("task")
	}
	for id := 2; id <= n; id++ {
		if err := l.AddDependency(id, id-1); err != nil {
			t.Fatalf("chain edge %d -> %d: %v", id, id-1, err)
		}
	}
	return l
}

func TestAddDependency(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) *List
		task    int
		depends int
		wantErr error
	}{
		{
			name:    "reverse of existing edge",
			setup:   func(t *testing.T) *List { return chain(t, 2) },
			task:    1,
			depends: 2,
			wantErr: ErrDependencyCycle, // 2 already depends on 1
		},
		{
			name: "independent tasks",
			setup: func(t *testing.T) *List {
				l := New()
				l.Add("a")
				l.Add("b")
				return l
			},
			task:    1,
			depends: 2,
			wantErr: nil,
		},
		{
			name:    "self dependency",
			setup:   func(t *testing.T) *List { return chain(t, 1) },
			task:    1,
			depends: 1,
			wantErr: ErrSelfDependency,
		},
		{
			name:    "missing task",
			setup:   func(t *testing.T) *List { return chain(t, 1) },
			task:    9,
			depends: 1,
			wantErr: ErrNotFound,
		},
		{
			name:    "missing dependee",
			setup:   func(t *testing.T) *List { return chain(t, 1) },
			task:    1,
			depends: 9,
			wantErr: ErrNotFound,
		},
		{
			name:    "transitive cycle",
			setup:   func(t *testing.T) *List { return chain(t, 4) },
			task:    1,
			depends: 4, // 4 -> 3 -> 2 -> 1
			wantErr: ErrDependencyCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.setup(t)
			before := l.Tasks()

			err := l.AddDependency(tt.task, tt.depends)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("AddDependency: %v", err)
				}
				got, _ := l.Get(tt.task)
				if !got.DependsOnTask(tt.depends) {
					t.Errorf("edge %d -> %d not recorded", tt.task, tt.depends)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			// Rejection leaves the graph unchanged.
			after := l.Tasks()
			for i := range before {
				if len(before[i].DependsOn) != len(after[i].DependsOn) {
					t.Errorf("task %d edges changed on rejection", before[i].ID)
				}
			}
		})
	}
}

func TestAddDependencyIdempotent(t *testing.T) {
	l := New()
	l.Add("a")
	l.Add("b")
	if err := l.AddDependency(2, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := l.AddDependency(2, 1); err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	got, _ := l.Get(2)
	if len(got.DependsOn) != 1 {
		t.Errorf("duplicate edge stored: %v", got.DependsOn)
	}
}

func TestRemoveDependency(t *testing.T) {
	l := chain(t, 2)

	if err := l.RemoveDependency(2, 1); err != nil {
		t.Fatalf("remove edge: %v", err)
	}
	got, _ := l.Get(2)
	if len(got.DependsOn) != 0 {
		t.Errorf("edge not removed: %v", got.DependsOn)
	}

	if err := l.RemoveDependency(2, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing absent edge: got %v, want ErrNotFound", err)
	}
	if err := l.RemoveDependency(9, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing edge from missing task: got %v, want ErrNotFound", err)
	}
}

func TestDependents(t *testing.T) {
	l := New()
	for i := 0; i < 4; i++ {
		l.Add("t")
	}
	l.AddDependency(3, 1)
	l.AddDependency(2, 1)
	l.AddDependency(4, 2)

	got := l.Dependents(1)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("dependents of 1 = %v, want [2 3]", got)
	}
	if got := l.Dependents(4); len(got) != 0 {
		t.Errorf("dependents of 4 = %v, want none", got)
	}
}

// Dependency checks must still terminate when the graph holds edges to
// tasks that were deleted afterwards.
func TestCycleCheckSkipsDanglingEdges(t *testing.T) {
	l := New()
	a := l.Add("a")
	b := l.Add("b")
	c := l.Add("c")
	l.AddDependency(b.ID, a.ID)
	l.AddDependency(c.ID, b.ID)
	l.Remove(a.ID)

	// b still lists a; walking c -> b -> a must not blow up.
	if err := l.AddDependency(b.ID, c.ID); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("got %v, want ErrDependencyCycle", err)
	}
	d := l.Add("d")
	if err := l.AddDependency(d.ID, c.ID); err != nil {
		t.Errorf("valid edge rejected: %v", err)
	}
}
