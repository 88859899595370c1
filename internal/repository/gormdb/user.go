package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

// compile-time check that *userRepo implements repository.UserRepository
var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	conn *gorm.DB
}

// Upsert inserts or updates a user keyed by github_id.
//
// Lookup-then-write rather than a blind write, because on update we must
// KEEP the existing internal ID and CreatedAt while overwriting every
// profile field and the access token. Two concurrent first logins can both
// pass the lookup; the loser's INSERT hits the unique index, surfaces as
// gorm.ErrDuplicatedKey, and is retried once as an update of the row the
// winner just created. A duplicate on the retry as well means the store is
// misbehaving, and surfaces as an explicit conflict.
func (r *userRepo) Upsert(ctx context.Context, user *model.User) error {
	err := r.upsertOnce(ctx, user)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	if err := r.upsertOnce(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("user", user.GithubID)
		}
		return err
	}
	return nil
}

func (r *userRepo) upsertOnce(ctx context.Context, user *model.User) error {
	var existing model.User
	err := r.conn.WithContext(ctx).
		Where("github_id = ?", user.GithubID).
		First(&existing).Error

	switch {
	case err == nil:
		// Known account — overwrite the mutable fields in place.
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
		if err := r.conn.WithContext(ctx).Save(user).Error; err != nil {
			return fmt.Errorf("gormdb: updating user github_id=%s: %w", user.GithubID, err)
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		// First login — INSERT; GORM fills ID and timestamps.
		if err := r.conn.WithContext(ctx).Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return err // raced with a concurrent first login, caller retries
			}
			return fmt.Errorf("gormdb: inserting user github_id=%s: %w", user.GithubID, err)
		}
		return nil

	default:
		return fmt.Errorf("gormdb: looking up user github_id=%s: %w", user.GithubID, err)
	}
}

// GetByGithubID retrieves a user by their GitHub ID.
// Returns apperror.ErrNotFound if no such account is linked.
func (r *userRepo) GetByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	var user model.User
	err := r.conn.WithContext(ctx).
		Where("github_id = ?", githubID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user", githubID)
		}
		return nil, fmt.Errorf("gormdb: getting user github_id=%s: %w", githubID, err)
	}
	return &user, nil
}

// Delete removes the user and every note they own.
func (r *userRepo) Delete(ctx context.Context, githubID string) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Where("github_id = ?", githubID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user", githubID)
			}
			return fmt.Errorf("gormdb: looking up user github_id=%s: %w", githubID, err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Note{}).Error; err != nil {
			return fmt.Errorf("gormdb: deleting notes for user %d: %w", user.ID, err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("gormdb: deleting user %d: %w", user.ID, err)
		}
		return nil
	})
}
