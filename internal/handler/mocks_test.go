package handler_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockUserRepo is an in-memory repository.UserRepository. UpsertErr lets a
// test force the write to fail.
type mockUserRepo struct {
	users     map[string]*model.User
	nextID    uint
	UpsertErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *model.User) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	if existing, ok := m.users[user.GithubID]; ok {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		user.ID = m.nextID
	}
	copied := *user
	m.users[user.GithubID] = &copied
	return nil
}

func (m *mockUserRepo) GetByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	user, ok := m.users[githubID]
	if !ok {
		return nil, apperror.NotFound("user", githubID)
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, githubID string) error {
	if _, ok := m.users[githubID]; !ok {
		return apperror.NotFound("user", githubID)
	}
	delete(m.users, githubID)
	return nil
}

// mockNoteRepo is an in-memory repository.NoteRepository with the same
// owner scoping and newest-first ordering as the real store.
type mockNoteRepo struct {
	notes  map[uint]*model.Note
	nextID uint
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[uint]*model.Note)}
}

func (m *mockNoteRepo) Create(ctx context.Context, note *model.Note) error {
	m.nextID++
	note.ID = m.nextID
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *mockNoteRepo) GetByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error) {
	note, ok := m.notes[id]
	if !ok || note.UserID != userID {
		return nil, apperror.NotFound("note", "unknown")
	}
	copied := *note
	return &copied, nil
}

func (m *mockNoteRepo) ListByUser(ctx context.Context, userID uint, opts repository.PageOptions) ([]model.Note, int64, error) {
	owned := m.ownedSorted(userID)
	total := int64(len(owned))

	start := opts.Page * opts.Size
	if start >= len(owned) {
		return []model.Note{}, total, nil
	}
	end := start + opts.Size
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note *model.Note) error {
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id, userID uint) error {
	note, ok := m.notes[id]
	if !ok || note.UserID != userID {
		return apperror.NotFound("note", "unknown")
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) SearchByUser(ctx context.Context, userID uint, keyword string) ([]model.Note, error) {
	matched := []model.Note{}
	for _, note := range m.ownedSorted(userID) {
		if strings.Contains(note.Title, keyword) || strings.Contains(note.Content, keyword) {
			matched = append(matched, note)
		}
	}
	return matched, nil
}

func (m *mockNoteRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return int64(len(m.ownedSorted(userID))), nil
}

func (m *mockNoteRepo) ownedSorted(userID uint) []model.Note {
	owned := []model.Note{}
	for _, note := range m.notes {
		if note.UserID == userID {
			owned = append(owned, *note)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	return owned
}
