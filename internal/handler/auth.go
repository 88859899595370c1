package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jaehyukc/growlog/internal/auth"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/service"
)

// OAuthProvider is the slice of the exchange client the handler needs.
// Declared here (at the consumer) so tests can substitute a stub without
// standing up a fake GitHub.
type OAuthProvider interface {
	AuthorizationURL() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*auth.Profile, error)
}

// AuthHandler owns the two login routes.
//
//	GET /login    → hand the front-end GitHub's authorize URL
//	GET /callback → complete the flow, then redirect back to the front-end
//
// The callback ALWAYS redirects — success or failure — because the browser
// is mid-navigation when it arrives here; a bare error status would leave
// the user staring at a blank page. Failures ride back as ?error=<code>:
//
//	<provider value> GitHub reported an OAuth error (user denied, etc.)
//	no_auth_code     callback arrived without a code parameter
//	no_token         the code-for-token exchange failed
//	no_user_info     the profile fetch failed
//	server_error     linking the account failed on our side
type AuthHandler struct {
	github      OAuthProvider
	accounts    *service.AccountService
	frontendURL string
	logger      *slog.Logger
}

func NewAuthHandler(github OAuthProvider, accounts *service.AccountService, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		github:      github,
		accounts:    accounts,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// HandleLogin returns the GitHub authorization URL as JSON.
//
// HTTP: GET /login
//
// The front-end performs the actual redirect; this endpoint only formats
// the URL from configuration.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"authUrl": h.github.AuthorizationURL(),
		"message": "redirect to authUrl to sign in with GitHub",
	})
}

// HandleCallback completes the OAuth login flow.
//
// HTTP: GET /callback?code=xxx  (or ?error=yyy when the user denied us)
//
// FLOW:
//  1. Bail out early on a provider-reported error or a missing code
//  2. Exchange the code for an access token — single attempt, codes are
//     single-use so a failed exchange is never retried
//  3. Fetch the GitHub profile with the token
//  4. Link or update the local account (the only write in the flow)
//  5. Redirect to the front-end with the linked GitHub ID
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	// GitHub reports user denial and misconfiguration via an error query
	// parameter instead of a code.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Warn("oauth callback: provider error", slog.String("error", errParam))
		h.redirectError(w, r, errParam)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("oauth callback: missing code parameter")
		h.redirectError(w, r, "no_auth_code")
		return
	}

	accessToken, err := h.github.ExchangeCode(r.Context(), code)
	if err != nil {
		// The error chain says whether this was network, parse, or a
		// provider rejection; the token itself never appears in logs.
		h.logger.Error("oauth callback: token exchange failed", slog.String("error", err.Error()))
		h.redirectError(w, r, "no_token")
		return
	}

	profile, err := h.github.FetchProfile(r.Context(), accessToken)
	if err != nil {
		h.logger.Error("oauth callback: profile fetch failed", slog.String("error", err.Error()))
		h.redirectError(w, r, "no_user_info")
		return
	}

	user, err := h.accounts.LinkOrUpdate(r.Context(), profile, accessToken)
	if err != nil {
		h.logger.Error("oauth callback: account linking failed",
			slog.Int64("githubId", profile.ID),
			slog.String("error", err.Error()),
		)
		h.redirectError(w, r, "server_error")
		return
	}

	h.logger.Info("login completed",
		slog.String("githubId", user.GithubID),
		slog.String("login", user.Login),
	)

	h.redirectSuccess(w, r, user)
}

func (h *AuthHandler) redirectSuccess(w http.ResponseWriter, r *http.Request, user *model.User) {
	target := fmt.Sprintf("%s/login/callback?githubId=%s",
		h.frontendURL, url.QueryEscape(user.GithubID))
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	target := fmt.Sprintf("%s/login/callback?error=%s",
		h.frontendURL, url.QueryEscape(code))
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
