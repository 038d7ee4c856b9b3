package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "Catalog/docs"
	"Catalog/internal/config"
	"Catalog/internal/logger"
	"Catalog/internal/repo/repotest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	cfg := config.Config{App: config.AppConfig{Env: "test", Version: "1.2.3"}}
	return newRouter(cfg, log, repotest.NewMemoryCourseRepo(), nil), logs
}

func serve(e *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRootRedirectsToCourses(t *testing.T) {
	e, _ := newTestEngine(t)

	w := serve(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/courses", w.Header().Get("Location"))
}

func TestOperationalEndpoints(t *testing.T) {
	e, _ := newTestEngine(t)

	w := serve(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"env":"test"}`, w.Body.String())

	w = serve(e, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"1.2.3"}`, w.Body.String())

	w = serve(e, http.MethodGet, "/swagger-doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/courses/{id}")
}

func TestRoutesWired(t *testing.T) {
	e, _ := newTestEngine(t)

	w := serve(e, http.MethodPost, "/courses",
		`{"name":"Routing 101","price":10,"duration_hours":2,"category":"Networking"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, target := range []string{"/courses", "/courses/new", "/api/categories", "/api/courses", "/api/courses/1"} {
		w = serve(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, w.Code, target)
	}

	w = serve(e, http.MethodPut, "/api/courses/1",
		`{"name":"Routing 201","price":10,"duration_hours":2,"category":"Networking"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(e, http.MethodDelete, "/api/courses/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(e, http.MethodGet, "/definitely/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestRequestLoggerLevels(t *testing.T) {
	e, logs := newTestEngine(t)

	serve(e, http.MethodGet, "/health", "")
	serve(e, http.MethodGet, "/api/courses/abc", "")

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/api/courses/:id", entries[1].ContextMap()["path"])
}
