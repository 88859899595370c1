// Package auth implements the GitHub OAuth authorization-code flow.
//
// OAUTH 2.0 AUTHORIZATION CODE FLOW:
//  1. The front-end sends the user to GitHub's authorization endpoint
//     (we hand it the URL from AuthorizationURL).
//  2. The user approves (or denies) the authorization request on GitHub.
//  3. GitHub redirects back to our /callback with a short-lived "code".
//  4. We exchange the code for an access token (server-to-server call).
//  5. We use the access token to fetch the user's GitHub profile.
//
// An authorization code is single-use and short-lived by provider contract:
// a failed exchange must not be retried with the same code, so every call
// here is a single attempt that fails fast.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/jaehyukc/growlog/internal/apperror"
)

// GitHub's /user endpoint, overridable in tests.
const defaultAPIBaseURL = "https://api.github.com"

// callTimeout bounds each outbound provider call. GitHub normally answers in
// well under a second; anything slower than this is treated as a network
// failure rather than left to block the request indefinitely.
const callTimeout = 10 * time.Second

// Failure kinds for the two provider calls. Callers distinguish
// "which call failed" with errors.Is; the wrapped cause says why
// (network error, undecodable body, or a provider-reported error code).
// Both wrap apperror.ErrUpstream: every provider failure belongs to the
// upstream-integration category, whichever call it came from.
var (
	// ErrNoToken: the token exchange completed without producing an access
	// token — the provider answered with an error field, or the response
	// could not be used.
	ErrNoToken = fmt.Errorf("auth: no access token received: %w", apperror.ErrUpstream)

	// ErrNoProfile: the profile fetch did not yield a usable user payload.
	ErrNoProfile = fmt.Errorf("auth: no user profile received: %w", apperror.ErrUpstream)
)

// Profile is the portion of the GitHub /user API response we care about.
// GitHub returns a much larger object — we only unmarshal the fields we
// store. Everything except ID and Login may be empty if the user hides it.
//
// GitHub API docs: https://docs.github.com/en/rest/users/users#get-the-authenticated-user
type Profile struct {
	ID        int64  `json:"id"`         // GitHub's numeric user ID — stable, never changes
	Login     string `json:"login"`      // GitHub username
	Name      string `json:"name"`       // Display name
	Email     string `json:"email"`      // Primary public email (empty if hidden)
	AvatarURL string `json:"avatar_url"` // Profile picture URL
	HTMLURL   string `json:"html_url"`   // Profile page URL
	Company   string `json:"company"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
}

// ProviderConfig configures a Provider. Endpoint and APIBaseURL exist so
// tests can point the client at an httptest server; production code leaves
// them zero and gets the real GitHub endpoints.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint // zero value → github.Endpoint
	APIBaseURL   string          // "" → https://api.github.com
}

// Provider wraps golang.org/x/oauth2 for the GitHub flow. The code-for-token
// exchange happens server-to-server using the client secret; the access
// token never touches the browser.
type Provider struct {
	config     *oauth2.Config
	apiBaseURL string
}

// NewProvider creates a Provider with the given credentials.
//
// Scopes we request:
//   - "read:user"  — the user's public profile (id, login, avatar, ...)
//   - "user:email" — the user's email addresses
func NewProvider(cfg ProviderConfig) *Provider {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = github.Endpoint
	}
	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	}
	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoint,
		},
		apiBaseURL: apiBase,
	}
}

// AuthorizationURL returns the URL the browser must visit to authorize us.
// Pure string formatting — no side effects, no network. GitHub expects the
// scope list comma-separated on this endpoint.
func (p *Provider) AuthorizationURL() string {
	v := url.Values{}
	v.Set("client_id", p.config.ClientID)
	v.Set("scope", "read:user,user:email")
	return p.config.Endpoint.AuthURL + "?" + v.Encode()
}

// ExchangeCode trades an authorization code for an access token.
//
// Single attempt, bounded by callTimeout. Failure paths stay
// distinguishable for the caller:
//   - provider answered with an error payload (bad/expired code, bad
//     credentials) → wraps ErrNoToken, carrying the provider's error code
//   - network failure or timeout → wraps apperror.ErrUpstream with the
//     *url.Error still in the chain
//   - anything else (unparseable body) → same upstream wrapping
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		// oauth2 reports provider-side rejections (an "error" field instead
		// of a token) as *RetrieveError with the parsed error code.
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
			return "", fmt.Errorf("%w: provider returned %q", ErrNoToken, retrieveErr.ErrorCode)
		}
		return "", fmt.Errorf("auth: exchanging OAuth code: %w: %w", apperror.ErrUpstream, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no token", ErrNoToken)
	}
	return token.AccessToken, nil
}

// FetchProfile calls GitHub's /user endpoint with the given access token.
//
// oauth2.NewClient returns an *http.Client whose transport injects the
// "Authorization: Bearer <token>" header on every request, so the token
// never appears in our request-building code (or our logs).
func (p *Provider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("auth: building /user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: calling GitHub /user API: %w: %w", apperror.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GitHub /user returned status %d", ErrNoProfile, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decoding /user response: %v", ErrNoProfile, err)
	}

	// A zero ID means GitHub sent something that isn't a user object.
	if profile.ID == 0 {
		return nil, fmt.Errorf("%w: response missing user id", ErrNoProfile)
	}

	return &profile, nil
}
