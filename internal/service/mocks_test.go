package service

// Hand-written in-memory mocks for the repository interfaces. The services
// only see the interfaces, so tests swap the database for a couple of maps
// and run in microseconds.

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

type mockUserRepo struct {
	users  map[string]*model.User // keyed by github id
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Upsert(_ context.Context, user *model.User) error {
	if existing, ok := m.users[user.GithubID]; ok {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		user.ID = m.nextID
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	stored := *user
	m.users[user.GithubID] = &stored
	return nil
}

func (m *mockUserRepo) GetByGithubID(_ context.Context, githubID string) (*model.User, error) {
	user, ok := m.users[githubID]
	if !ok {
		return nil, apperror.NotFound("user", githubID)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) Delete(_ context.Context, githubID string) error {
	if _, ok := m.users[githubID]; !ok {
		return apperror.NotFound("user", githubID)
	}
	delete(m.users, githubID)
	return nil
}

// addUser seeds a linked account directly, bypassing the OAuth flow.
func (m *mockUserRepo) addUser(t *testing.T, githubID string) *model.User {
	t.Helper()
	user := &model.User{GithubID: githubID, Login: "user-" + githubID}
	if err := m.Upsert(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

type mockNoteRepo struct {
	notes  map[uint]*model.Note
	nextID uint
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[uint]*model.Note)}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.Note) error {
	m.nextID++
	note.ID = m.nextID
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) GetByIDAndUser(_ context.Context, id, userID uint) (*model.Note, error) {
	note, ok := m.notes[id]
	if !ok || note.UserID != userID {
		return nil, apperror.NotFound("note", "")
	}
	result := *note
	return &result, nil
}

func (m *mockNoteRepo) ListByUser(_ context.Context, userID uint, opts repository.PageOptions) ([]model.Note, int64, error) {
	owned := m.ownedSorted(userID)
	total := int64(len(owned))

	offset := opts.Page * opts.Size
	if offset >= len(owned) {
		return []model.Note{}, total, nil
	}
	owned = owned[offset:]
	if opts.Size < len(owned) {
		owned = owned[:opts.Size]
	}
	return owned, total, nil
}

func (m *mockNoteRepo) Update(_ context.Context, note *model.Note) error {
	existing, ok := m.notes[note.ID]
	if !ok {
		return apperror.NotFound("note", "")
	}
	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = time.Now()
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id, userID uint) error {
	note, ok := m.notes[id]
	if !ok || note.UserID != userID {
		return apperror.NotFound("note", "")
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) SearchByUser(_ context.Context, userID uint, keyword string) ([]model.Note, error) {
	matched := []model.Note{}
	for _, note := range m.ownedSorted(userID) {
		if strings.Contains(note.Title, keyword) || strings.Contains(note.Content, keyword) {
			matched = append(matched, note)
		}
	}
	return matched, nil
}

func (m *mockNoteRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, note := range m.notes {
		if note.UserID == userID {
			count++
		}
	}
	return count, nil
}

// ownedSorted returns the user's notes newest first, ties broken by
// descending id, matching the store's ordering.
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
