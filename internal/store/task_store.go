package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/model"
)

// SaveTasks replaces the stored snapshot of a project's task list.
// The whole list is written in one transaction (delete-all then
// insert-all) together with the project's id counter, so a reload
// reconstructs an identical list and id assignment continues without
// collision.
func (s *SQLiteStore) SaveTasks(ctx context.Context, projectID string, list *engine.List) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tasks WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("clearing tasks for project %s: %w", projectID, err)
	}

	const query = `
		INSERT INTO tasks (
			project_id, id, description, completed, priority,
			due_date, category, parent_id, recurrence, depends_on
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range list.Tasks() {
		deps := t.DependsOn
		if deps == nil {
			deps = []int{}
		}
		dependsOn, err := json.Marshal(deps)
		if err != nil {
			return fmt.Errorf("marshaling depends_on for task %d: %w", t.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			projectID, t.ID, t.Description, boolToInt(t.Completed), int(t.Priority),
			t.DueDate, t.Category, t.ParentID, string(t.Recurrence), string(dependsOn),
		)
		if err != nil {
			return fmt.Errorf("inserting task %d: %w", t.ID, err)
		}
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE projects SET next_id = ?, updated_at = ? WHERE id = ?",
		list.NextID(), time.Now().UTC(), projectID,
	)
	if err != nil {
		return fmt.Errorf("updating id counter for project %s: %w", projectID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s not found", projectID)
	}

	return tx.Commit()
}

// LoadTasks reconstructs a project's task list from its stored
// snapshot, preserving task ids and the id counter.
func (s *SQLiteStore) LoadTasks(ctx context.Context, projectID string) (*engine.List, error) {
	var nextID int
	err := s.db.GetContext(ctx, &nextID,
		"SELECT next_id FROM projects WHERE id = ?", projectID)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", projectID, err)
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks WHERE project_id = ? ORDER BY id", projectID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for project %s: %w", projectID, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	list, err := engine.Restore(tasks, nextID)
	if err != nil {
		return nil, fmt.Errorf("restoring task list for project %s: %w", projectID, err)
	}
	return list, nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task      model.Task
		projectID string
		completed int
		priority  int
		dueDate   *time.Time
		parentID  *int
		dependsOn string
	)

	err := rows.Scan(
		&projectID, &task.ID, &task.Description, &completed, &priority,
		&dueDate, &task.Category, &parentID, &task.Recurrence, &dependsOn,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Completed = completed != 0
	task.Priority = model.Priority(priority)
	task.DueDate = dueDate
	task.ParentID = parentID

	if dependsOn != "" {
		if err := json.Unmarshal([]byte(dependsOn), &task.DependsOn); err != nil {
			return model.Task{}, fmt.Errorf("unmarshaling depends_on: %w", err)
		}
	}
	if len(task.DependsOn) == 0 {
		task.DependsOn = nil
	}

	return task, nil
}
