package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

// Validation and paging constants.
const (
	MaxTitleLength   = 100
	MaxContentLength = 5000
	DefaultPageSize  = 10
	MaxPageSize      = 100
)

// NoteService handles the business rules for retrospective notes.
//
// Every operation starts by resolving the owner from their GitHub ID — the
// shared precondition lives in resolveOwner, not copied per method. All
// note lookups after that are scoped by (note id, owner id) jointly: asking
// for someone else's note is indistinguishable from asking for a note that
// doesn't exist.
type NoteService struct {
	notes  repository.NoteRepository
	users  repository.UserRepository
	logger *slog.Logger
}

func NewNoteService(notes repository.NoteRepository, users repository.UserRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		notes:  notes,
		users:  users,
		logger: logger,
	}
}

// NotePage is one page of a user's notes plus the paging envelope.
type NotePage struct {
	Notes         []model.Note `json:"notes"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	CurrentPage   int          `json:"currentPage"`
	Size          int          `json:"size"`
}

// Create validates and saves a new note for the owner.
func (s *NoteService) Create(ctx context.Context, githubID, title, content string) (*model.Note, error) {
	title, content, err := validateNoteData(title, content)
	if err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		Title:   title,
		Content: content,
		UserID:  owner.ID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		s.logger.Error("failed to create note",
			slog.String("githubId", owner.GithubID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.String("githubId", owner.GithubID),
		slog.Uint64("noteId", uint64(note.ID)),
	)

	return note, nil
}

// List returns one page of the owner's notes, newest first.
// Page is zero-indexed; size is clamped to 1..MaxPageSize (default 10)
// rather than rejected.
func (s *NoteService) List(ctx context.Context, githubID string, page, size int) (*NotePage, error) {
	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return nil, err
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	notes, total, err := s.notes.ListByUser(ctx, owner.ID, repository.PageOptions{
		Page: page,
		Size: size,
	})
	if err != nil {
		s.logger.Error("failed to list notes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return &NotePage{
		Notes:         notes,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		Size:          size,
	}, nil
}

// Get returns one note scoped to the owner.
func (s *NoteService) Get(ctx context.Context, githubID string, noteID uint) (*model.Note, error) {
	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return nil, err
	}

	return s.notes.GetByIDAndUser(ctx, noteID, owner.ID)
}

// Update replaces title and content wholesale. The creation timestamp is
// untouched; the modification timestamp moves.
func (s *NoteService) Update(ctx context.Context, githubID string, noteID uint, title, content string) (*model.Note, error) {
	title, content, err := validateNoteData(title, content)
	if err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return nil, err
	}

	note, err := s.notes.GetByIDAndUser(ctx, noteID, owner.ID)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	if err := s.notes.Update(ctx, note); err != nil {
		s.logger.Error("failed to update note",
			slog.Uint64("noteId", uint64(noteID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating note: %w", err)
	}

	s.logger.Info("note updated",
		slog.String("githubId", owner.GithubID),
		slog.Uint64("noteId", uint64(noteID)),
	)

	return note, nil
}

// Delete removes the owner's note. Same scoping rule as Get.
func (s *NoteService) Delete(ctx context.Context, githubID string, noteID uint) error {
	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, noteID, owner.ID); err != nil {
		return err
	}

	s.logger.Info("note deleted",
		slog.String("githubId", owner.GithubID),
		slog.Uint64("noteId", uint64(noteID)),
	)
	return nil
}

// Search returns the owner's notes whose title or content contains keyword,
// newest first. An empty keyword matches everything.
func (s *NoteService) Search(ctx context.Context, githubID, keyword string) ([]model.Note, error) {
	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.SearchByUser(ctx, owner.ID, strings.TrimSpace(keyword))
	if err != nil {
		s.logger.Error("failed to search notes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	return notes, nil
}

// Count returns how many notes the owner has.
func (s *NoteService) Count(ctx context.Context, githubID string) (int64, error) {
	owner, err := s.resolveOwner(ctx, githubID)
	if err != nil {
		return 0, err
	}

	count, err := s.notes.CountByUser(ctx, owner.ID)
	if err != nil {
		s.logger.Error("failed to count notes", slog.String("error", err.Error()))
		return 0, fmt.Errorf("counting notes: %w", err)
	}

	return count, nil
}

// resolveOwner validates the GitHub ID and loads the owning user.
// Returns ErrNotFound (via the repository) for an unlinked ID.
func (s *NoteService) resolveOwner(ctx context.Context, githubID string) (*model.User, error) {
	githubID = strings.TrimSpace(githubID)
	if githubID == "" {
		return nil, apperror.ValidationFailed("githubId", "github id is required")
	}

	return s.users.GetByGithubID(ctx, githubID)
}

// validateNoteData trims and checks both fields, returning the trimmed
// values. Enforced here — not only at the HTTP boundary — so every caller
// gets the same rules.
func validateNoteData(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return "", "", apperror.ValidationFailed("title", "note title is required")
	}
	if len(title) > MaxTitleLength {
		return "", "", apperror.ValidationFailed("title",
			fmt.Sprintf("note title must be %d characters or less", MaxTitleLength))
	}
	if content == "" {
		return "", "", apperror.ValidationFailed("content", "note content is required")
	}
	if len(content) > MaxContentLength {
		return "", "", apperror.ValidationFailed("content",
			fmt.Sprintf("note content must be %d characters or less", MaxContentLength))
	}

	return title, content, nil
}
