package model

import "time"

// Project is an independent task list container. Each project owns its
// own tasks and id sequence; the engine has no awareness of projects.
type Project struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	NextID    int       `json:"next_id" db:"next_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
