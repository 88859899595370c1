package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaehyukc/growlog/internal/handler"
	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/service"
)

func newUserFixture(t *testing.T) (*handler.UserHandler, *mockUserRepo) {
	t.Helper()
	users := newMockUserRepo()
	owner := &model.User{
		GithubID:    "583231",
		Login:       "octocat",
		Name:        "The Octocat",
		AccessToken: "gho_secret",
	}
	if err := users.Upsert(context.Background(), owner); err != nil {
		t.Fatalf("seeding owner: %v", err)
	}
	accounts := service.NewAccountService(users, testLogger())
	return handler.NewUserHandler(accounts, testLogger()), users
}

func TestUserHandler_HandleGet(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		h, _ := newUserFixture(t)

		req, rr := request(http.MethodGet, "/api/user/583231", "", map[string]string{"githubId": "583231"})

		h.HandleGet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		raw := rr.Body.String()

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal([]byte(raw), &body))
		assert.Equal(t, "583231", body["githubId"])
		assert.Equal(t, "octocat", body["login"])

		// The access token must never appear in the response.
		_, leaked := body["accessToken"]
		assert.False(t, leaked)
		assert.NotContains(t, raw, "gho_secret")
	})

	t.Run("unknown account", func(t *testing.T) {
		h, _ := newUserFixture(t)

		req, rr := request(http.MethodGet, "/api/user/999999", "", map[string]string{"githubId": "999999"})

		h.HandleGet(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "not_found", decodeError(t, rr).Error)
	})
}

func TestUserHandler_HandleDelete(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		h, users := newUserFixture(t)

		req, rr := request(http.MethodDelete, "/api/user/583231", "", map[string]string{"githubId": "583231"})

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, users.users)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "user deleted", body["message"])
	})

	t.Run("unknown account", func(t *testing.T) {
		h, _ := newUserFixture(t)

		req, rr := request(http.MethodDelete, "/api/user/999999", "", map[string]string{"githubId": "999999"})

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
