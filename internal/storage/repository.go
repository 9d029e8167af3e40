package storage

import (
	"context"

	"github.com/sandeepkv93/drawerd/internal/model"
)

// Repository is the local persistence boundary. Save operations always
// receive the entire current collection, never a delta: the in-memory store
// is the source of truth within a session and the repository mirrors it.
type Repository interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error

	LoadNotes(ctx context.Context) ([]model.Note, error)
	SaveNotes(ctx context.Context, notes []model.Note) error
}
