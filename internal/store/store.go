package store

import (
	"context"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/model"
)

// Store defines the persistence interface for projects and their task
// list snapshots. Each project is fully independent: it owns its tasks
// and its id sequence.
type Store interface {
	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) (model.Project, error)
	GetProjectByName(ctx context.Context, name string) (*model.Project, error)
	GetProjects(ctx context.Context) ([]model.Project, error)
	RenameProject(ctx context.Context, id, newName string) error
	DeleteProject(ctx context.Context, id string) error
	EnsureProject(ctx context.Context, name string) (*model.Project, error)

	// === Task list snapshots ===

	SaveTasks(ctx context.Context, projectID string, list *engine.List) error
	LoadTasks(ctx context.Context, projectID string) (*engine.List, error)

	// Lifecycle
	Close() error
}
