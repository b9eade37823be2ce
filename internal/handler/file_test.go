package handler

import (
	"PdfVault/config"
	"PdfVault/internal/repo"
	"PdfVault/model"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.InitConfig()
	repo.InitSqliteTest()
	os.Exit(m.Run())
}

// newListRouter wires ListFiles behind a stub identity middleware.
func newListRouter() *gin.Engine {
	r := gin.New()
	r.POST("/file/list", func(c *gin.Context) {
		c.Set("username", "tester")
		c.Set("user_id", uint64(1))
		c.Set("level", model.LevelUser)
		ListFiles(c)
	})
	return r
}

// TestListFilesAcceptsEmptyBody tests that a bare list call works, since
// both search and tags are optional.
func TestListFilesAcceptsEmptyBody(t *testing.T) {
	r := newListRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/file/list", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("empty body: expect 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/file/list", strings.NewReader(`{}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("empty object: expect 200, got %d (%s)", w.Code, w.Body.String())
	}
}

// TestListFilesRejectsMalformedBody tests that broken JSON still fails.
func TestListFilesRejectsMalformedBody(t *testing.T) {
	r := newListRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/file/list", strings.NewReader(`{"search":`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expect 400, got %d", w.Code)
	}
}
