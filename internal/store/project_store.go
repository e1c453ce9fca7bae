package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/tasktrack/internal/model"
)

// CreateProject inserts a new, empty project. Generates a UUID if the
// ID is empty. The name must be unique.
func (s *SQLiteStore) CreateProject(ctx context.Context, project model.Project) (model.Project, error) {
	if project.Name == "" {
		return model.Project{}, fmt.Errorf("project name must not be empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.NextID < 1 {
		project.NextID = 1
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, next_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.NextID,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project %s: %w", project.Name, err)
	}
	return project, nil
}

// GetProjectByName retrieves a project by its unique name.
func (s *SQLiteStore) GetProjectByName(ctx context.Context, name string) (*model.Project, error) {
	var p model.Project
	err := s.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", name, err)
	}
	return &p, nil
}

// GetProjects retrieves all projects ordered by name.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects, "SELECT * FROM projects ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// RenameProject changes a project's name. The new name must be unique.
func (s *SQLiteStore) RenameProject(ctx context.Context, id, newName string) error {
	if newName == "" {
		return fmt.Errorf("project name must not be empty")
	}
	result, err := s.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, updated_at = ? WHERE id = ?",
		newName, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("renaming project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// DeleteProject removes a project and, via the foreign key cascade,
// every task stored under it.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// EnsureProject returns the project with the given name, creating it
// if it does not exist yet.
func (s *SQLiteStore) EnsureProject(ctx context.Context, name string) (*model.Project, error) {
	p, err := s.GetProjectByName(ctx, name)
	if err == nil {
		return p, nil
	}
	created, err := s.CreateProject(ctx, model.Project{Name: name})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
