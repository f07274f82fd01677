package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/collablab-app/backend/database"
	"github.com/collablab-app/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the real router to an isolated in-memory database.
// With no Descope project configured the bearer token doubles as the
// caller's external identity.
func newTestRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	router := newRouter(database.New(db), nil, withConfig(map[string]string{}))
	return router, db
}

// doJSON issues a request with the given bearer identity and JSON body.
func doJSON(t *testing.T, router http.Handler, method, path, identity string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if identity != "" {
		req.Header.Set("Authorization", "Bearer "+identity)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func signUp(t *testing.T, router http.Handler, identity, name string) models.User {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/users", identity, map[string]any{
		"email": identity + "@example.edu",
		"name":  name,
	})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, recorder.Code, recorder.Body.String())
	return decodeBody[models.User](t, recorder)
}

func TestRequestsWithoutIdentityAreRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/projects", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}
