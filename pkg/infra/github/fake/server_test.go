package fake_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghrelease/pkg/infra/github/fake"
)

type release struct {
	ID      int64  `json:"id"`
	TagName string `json:"tag_name"`
}

func TestServer_CreateAndList(t *testing.T) {
	srv := fake.New(fake.WithFirstID(10))
	srv.AddRelease("owner", "repo", "v0.9.0")

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/repos/owner/repo/releases", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		return w
	}

	w := post(`{"tag_name":"v1.0.0","name":"v1.0.0"}`)
	gt.Equal(t, w.Code, http.StatusCreated)
	var created release
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	gt.Equal(t, created.ID, int64(11))
	gt.Equal(t, created.TagName, "v1.0.0")

	w = post(`{"tag_name":"v1.0.0","name":"v1.0.0"}`)
	gt.Equal(t, w.Code, http.StatusUnprocessableEntity)
	gt.String(t, w.Body.String()).Contains(`"code":"already_exists"`)

	w = post(`{"name":"no tag"}`)
	gt.Equal(t, w.Code, http.StatusUnprocessableEntity)
	gt.String(t, w.Body.String()).Contains(`"code":"missing_field"`)

	req := httptest.NewRequest(http.MethodGet, "/repos/owner/repo/releases", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusOK)

	var list []release
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	gt.Equal(t, len(list), 2)
	gt.Equal(t, list[0].TagName, "v1.0.0")
	gt.Equal(t, list[1].TagName, "v0.9.0")

	gt.Equal(t, srv.CountCalls(http.MethodPost), 3)
	gt.Equal(t, srv.CountCalls(http.MethodGet), 1)
}

func TestServer_Token(t *testing.T) {
	srv := fake.New(fake.WithToken("abc"))

	req := httptest.NewRequest(http.MethodGet, "/repos/owner/repo/releases", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusUnauthorized)

	req = httptest.NewRequest(http.MethodGet, "/repos/owner/repo/releases", nil)
	req.Header.Set("Authorization", "token abc")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, strings.TrimSpace(w.Body.String()), "[]")

	calls := srv.Calls()
	gt.Equal(t, len(calls), 2)
	gt.Equal(t, calls[1].Authorization, "token abc")
}
