// Package service contains the business logic layer.
//
// Handlers parse HTTP and shape responses; services enforce the rules and
// orchestrate the repositories; repositories talk to the store. Services
// accept primitives and domain types — never *http.Request — and return
// domain errors from internal/apperror, which the handler layer maps to
// status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jaehyukc/growlog/internal/apperror"
	"github.com/jaehyukc/growlog/internal/auth"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

// AccountService links GitHub identities to local user rows.
type AccountService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewAccountService(users repository.UserRepository, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		logger: logger,
	}
}

// LinkOrUpdate upserts a user from a freshly fetched GitHub profile.
//
// First login for a GitHub ID creates the row; every later login overwrites
// all mutable profile fields and the access token unconditionally — no
// merging with prior values, GitHub's answer is canonical. The internal ID
// and creation timestamp survive updates.
//
// No user row is considered linked until this returns nil: a login flow
// that fails between the token exchange and this call leaves no partial
// state behind.
func (s *AccountService) LinkOrUpdate(ctx context.Context, profile *auth.Profile, accessToken string) (*model.User, error) {
	if profile == nil {
		return nil, fmt.Errorf("service/account: profile must not be nil")
	}

	user := &model.User{
		GithubID:    strconv.FormatInt(profile.ID, 10),
		Login:       profile.Login,
		Name:        profile.Name,
		Email:       profile.Email,
		AvatarURL:   profile.AvatarURL,
		HTMLURL:     profile.HTMLURL,
		Company:     profile.Company,
		Location:    profile.Location,
		Bio:         profile.Bio,
		AccessToken: accessToken,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("service/account: upserting user github_id=%s: %w", user.GithubID, err)
	}

	s.logger.Info("github account linked",
		slog.String("githubId", user.GithubID),
		slog.String("login", user.Login),
	)

	return user, nil
}

// GetByGithubID returns the linked account for a GitHub ID.
func (s *AccountService) GetByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	githubID = strings.TrimSpace(githubID)
	if githubID == "" {
		return nil, apperror.ValidationFailed("githubId", "github id is required")
	}

	return s.users.GetByGithubID(ctx, githubID)
}

// Delete unlinks an account and removes its notes. Administrative operation;
// nothing in the login flow calls this.
func (s *AccountService) Delete(ctx context.Context, githubID string) error {
	githubID = strings.TrimSpace(githubID)
	if githubID == "" {
		return apperror.ValidationFailed("githubId", "github id is required")
	}

	if err := s.users.Delete(ctx, githubID); err != nil {
		return err
	}

	s.logger.Info("account deleted", slog.String("githubId", githubID))
	return nil
}
