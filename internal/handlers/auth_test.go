package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog-backend/internal/services"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

func TestSignup(t *testing.T) {
	t.Run("missing information", func(t *testing.T) {
		for _, body := range []string{
			`{}`,
			`{"username":"u","password":"p"}`,
			`{"email":"a@x.com","password":"p"}`,
			`{"email":"a@x.com","username":"u"}`,
		} {
			h, _, _ := newTestAuthHandler(t)
			rec := postJSON(h.Signup, "/auth/signup", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"missing information"}`, rec.Body.String())
		}
	})

	t.Run("success returns user without password", func(t *testing.T) {
		h, _, _ := newTestAuthHandler(t)
		rec := postJSON(h.Signup, "/auth/signup", `{"username":"u","email":"a@x.com","password":"p"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "a@x.com", resp["email"])
		assert.Equal(t, "u", resp["username"])
		assert.NotContains(t, resp, "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		h, users, _ := newTestAuthHandler(t)
		seedUser(t, users, "a@x.com", "u", "p")

		rec := postJSON(h.Signup, "/auth/signup", `{"username":"u2","email":"a@x.com","password":"p2"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestSignin(t *testing.T) {
	t.Run("unknown user and bad password collapse to one outcome", func(t *testing.T) {
		h, users, _ := newTestAuthHandler(t)
		seedUser(t, users, "a@x.com", "u", "p")

		unknown := postJSON(h.Signin, "/auth/login", `{"email":"b@x.com","password":"p"}`)
		mismatch := postJSON(h.Signin, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, mismatch.Code)
		assert.Equal(t, unknown.Body.String(), mismatch.Body.String(),
			"responses must not reveal whether the email exists")
	})

	t.Run("success returns token only", func(t *testing.T) {
		h, users, _ := newTestAuthHandler(t)
		seedUser(t, users, "a@x.com", "u", "p")

		rec := postJSON(h.Signin, "/auth/login", `{"email":"a@x.com","password":"p"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["token"])

		claim, err := utils.VerifyToken(resp["token"], testSecret)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claim.Email)
	})
}

func TestMeUnauthenticated(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"You are not authenticated"}`, rec.Body.String())
}

func TestLogout(t *testing.T) {
	t.Run("without session still disconnects", func(t *testing.T) {
		h, _, _ := newTestAuthHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Disconnected"}`, rec.Body.String())
	})

	t.Run("clears the session but not the bearer token", func(t *testing.T) {
		h, _, sessions := newTestAuthHandler(t)
		token, err := sessions.Create(context.Background(), "a@x.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, sessions.invalidated, token)

		cookie := findCookie(rec.Result().Cookies(), services.SessionCookieName)
		require.NotNil(t, cookie)
		assert.Less(t, cookie.MaxAge, 0, "cookie must be expired")

		// An already issued bearer token keeps verifying after logout.
		bearer, err := utils.GenerateToken(utils.TokenUser{Email: "a@x.com"}, testSecret)
		require.NoError(t, err)
		_, err = utils.VerifyToken(bearer, testSecret)
		assert.NoError(t, err)
	})
}
