package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

// compile-time check that *noteRepo implements repository.NoteRepository
var _ repository.NoteRepository = (*noteRepo)(nil)

type noteRepo struct {
	conn *gorm.DB
}

func (r *noteRepo) Create(ctx context.Context, note *model.Note) error {
	if err := r.conn.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("gormdb: creating note: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches one note scoped by owner. A note that exists under
// a different owner comes back as ErrNotFound — the query never confirms
// existence across owners.
func (r *noteRepo) GetByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error) {
	var note model.Note
	err := r.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("note", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("gormdb: getting note %d: %w", id, err)
	}
	return &note, nil
}

func (r *noteRepo) ListByUser(ctx context.Context, userID uint, opts repository.PageOptions) ([]model.Note, int64, error) {
	var total int64
	if err := r.conn.WithContext(ctx).
		Model(&model.Note{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gormdb: counting notes for user %d: %w", userID, err)
	}

	notes := []model.Note{}
	err := r.conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(opts.Size).
		Offset(opts.Page * opts.Size).
		Find(&notes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gormdb: listing notes for user %d: %w", userID, err)
	}

	return notes, total, nil
}

func (r *noteRepo) Update(ctx context.Context, note *model.Note) error {
	if err := r.conn.WithContext(ctx).Save(note).Error; err != nil {
		return fmt.Errorf("gormdb: updating note %d: %w", note.ID, err)
	}
	return nil
}

// Delete removes the note under the given owner. RowsAffected tells us
// whether the scoped row existed at all.
func (r *noteRepo) Delete(ctx context.Context, id, userID uint) error {
	res := r.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("gormdb: deleting note %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("note", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// SearchByUser runs LIKE '%keyword%' against title or content. Case
// sensitivity follows the store's collation, matching SQL LIKE semantics.
// An empty keyword degenerates to '%%' and matches every note.
func (r *noteRepo) SearchByUser(ctx context.Context, userID uint, keyword string) ([]model.Note, error) {
	pattern := "%" + keyword + "%"
	notes := []model.Note{}
	err := r.conn.WithContext(ctx).
		Where("user_id = ? AND (title LIKE ? OR content LIKE ?)", userID, pattern, pattern).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("gormdb: searching notes for user %d: %w", userID, err)
	}
	return notes, nil
}

func (r *noteRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&model.Note{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormdb: counting notes for user %d: %w", userID, err)
	}
	return count, nil
}
