package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrenko/specsheet/internal/model"
)

func postForm(router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin_Success(t *testing.T) {
	srv := testServer(t, &stubSource{records: magneticRows()})
	router := srv.Router()

	w := postForm(router, "/admin", url.Values{"user": {"admin"}, "pass": {"secret"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	cookie := sessionCookieFrom(t, w)

	// The session cookie grants access to the dashboard.
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := testServer(t, &stubSource{})
	router := srv.Router()

	w := postForm(router, "/admin", url.Values{"user": {"admin"}, "pass": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Throttled(t *testing.T) {
	src := &stubSource{}
	cfg := model.DefaultConfig()
	cfg.Admin.Pass = "secret"
	cfg.Admin.LoginPerMinute = 0.001 // effectively burst-only
	srv := New(cfg, src, testLogger())
	router := srv.Router()

	form := url.Values{"user": {"admin"}, "pass": {"wrong"}}
	var last int
	for i := 0; i < 5; i++ {
		last = postForm(router, "/admin", form, nil).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestDashboard_RequiresSession(t *testing.T) {
	srv := testServer(t, &stubSource{})
	router := srv.Router()

	for _, path := range []string{"/admin/dashboard", "/admin/add"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin", w.Header().Get("Location"), path)
	}
}

func TestAddRow(t *testing.T) {
	src := &stubSource{records: magneticRows()}
	srv := testServer(t, src)
	router := srv.Router()

	login := postForm(router, "/admin", url.Values{"user": {"admin"}, "pass": {"secret"}}, nil)
	cookie := sessionCookieFrom(t, login)

	form := url.Values{
		"table":      {"magnetic-flow-meter"},
		"Instrument": {"ignored, forced to table name"},
		"Size":       {"3 inch"},
		"Range":      {"200-300"},
		"Cost":       {"40"},
	}
	w := postForm(router, "/admin/add", form, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	require.Len(t, src.appended, 1)
	rec := src.appended[0]
	assert.Equal(t, "Magnetic Flow Meter", rec.Get("Instrument"))
	assert.Equal(t, "200-300", rec.Get("Range"))
}

func TestLogout_RevokesSession(t *testing.T) {
	srv := testServer(t, &stubSource{records: magneticRows()})
	router := srv.Router()

	login := postForm(router, "/admin", url.Values{"user": {"admin"}, "pass": {"secret"}}, nil)
	cookie := sessionCookieFrom(t, login)

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	// The old token no longer opens the dashboard.
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}
