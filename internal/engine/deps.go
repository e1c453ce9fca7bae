package engine

import (
	"fmt"
	"sort"
)

// AddDependency records that taskID is blocked by dependsOnID. The edge
// is rejected if either task is missing, if it is a self-reference, or
// if it would close a cycle; on rejection the list is unchanged. Adding
// an edge that already exists is a no-op success.
func (l *List) AddDependency(taskID, dependsOnID int) error {
	if taskID == dependsOnID {
		return fmt.Errorf("task %d: %w", taskID, ErrSelfDependency)
	}
	i := l.find(taskID)
	if i < 0 {
		return fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	if l.find(dependsOnID) < 0 {
		return fmt.Errorf("task %d: %w", dependsOnID, ErrNotFound)
	}
	if l.tasks[i].DependsOnTask(dependsOnID) {
		return nil
	}
	if l.reachable(dependsOnID, taskID) {
		return fmt.Errorf("%d -> %d: %w", taskID, dependsOnID, ErrDependencyCycle)
	}
	l.tasks[i].DependsOn = append(l.tasks[i].DependsOn, dependsOnID)
	return nil
}

// RemoveDependency deletes the taskID -> dependsOnID edge. Missing
// task or missing edge both report not found.
func (l *List) RemoveDependency(taskID, dependsOnID int) error {
	i := l.find(taskID)
	if i < 0 {
		return fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	deps := l.tasks[i].DependsOn
	for j, dep := range deps {
		if dep == dependsOnID {
			l.tasks[i].DependsOn = append(deps[:j], deps[j+1:]...)
			return nil
		}
	}
	return fmt.Errorf("dependency %d -> %d: %w", taskID, dependsOnID, ErrNotFound)
}

// Dependents returns the ids of tasks directly blocked by id, sorted
// ascending.
func (l *List) Dependents(id int) []int {
	var out []int
	for _, t := range l.tasks {
		if t.DependsOnTask(id) {
			out = append(out, t.ID)
		}
	}
	sort.Ints(out)
	return out
}

// reachable reports whether target can be reached from start by
// following DependsOn edges forward. The visited set guards against
// revisits, so the walk terminates on any finite graph even if a cycle
// were somehow already present. Edges to deleted tasks are skipped.
func (l *List) reachable(start, target int) bool {
	if start == target {
		return true
	}
	visited := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i := l.find(cur)
		if i < 0 {
			continue // dangling edge
		}
		for _, dep := range l.tasks[i].DependsOn {
			if dep == target {
				return true
			}
			if !visited[dep] {
				visited[dep] = true
				stack = append(stack, dep)
			}
		}
	}
	return false
}
