package mux

import (
	"holdem-server/internal/jwt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_authRouter(t *testing.T) {
	m, _ := newTestMux(t)

	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, r.Context().Value(ctxPlayerIDKey))
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	assertGet(t, ts, "/test", &errObj, 401, "not-a-token")

	token, err := jwt.Sign(42)
	assert.NoError(t, err)

	// test using auth header
	var id int64
	resp := assertGet(t, ts, "/test", &id, 200, token)
	assert.Equal(t, int64(42), id)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "42", resp.Header.Get("Holdem-UserID"))
	}

	// test using query parameter
	resp = assertGet(t, ts, "/test?access_token="+url.QueryEscape(token), &id, 200)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "42", resp.Header.Get("Holdem-UserID"))
	}
}
