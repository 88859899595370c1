// Package repository declares the persistence interfaces the services
// program against. The concrete implementation lives in repository/gormdb;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/jaehyukc/growlog/internal/model"
)

// PageOptions is offset paging: Page is zero-indexed, Size is the page size.
// Callers (the service layer) are responsible for clamping both.
type PageOptions struct {
	Page int
	Size int
}

// UserRepository persists linked GitHub accounts, keyed by github_id.
type UserRepository interface {
	// Upsert inserts the user on first login or, when a row with the same
	// github_id exists, overwrites its profile fields and access token while
	// preserving the internal ID and creation timestamp. The passed struct
	// is updated in place with the persisted state.
	Upsert(ctx context.Context, user *model.User) error

	// GetByGithubID returns apperror.ErrNotFound when no row matches.
	GetByGithubID(ctx context.Context, githubID string) (*model.User, error)

	// Delete removes the user row. Owned notes are removed with it.
	Delete(ctx context.Context, githubID string) error
}

// NoteRepository persists journal entries. Every read and write is scoped by
// (note id, owner id) jointly — a note under the wrong owner is not found.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	GetByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error)
	// ListByUser returns one page ordered by creation time descending,
	// plus the total number of notes the user owns.
	ListByUser(ctx context.Context, userID uint, opts PageOptions) ([]model.Note, int64, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id, userID uint) error
	// SearchByUser substring-matches keyword against title or content,
	// newest first. No pagination.
	SearchByUser(ctx context.Context, userID uint, keyword string) ([]model.Note, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}
