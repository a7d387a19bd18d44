package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/David-HERS/HDF5-Data-Migrator/common/api"
	"github.com/David-HERS/HDF5-Data-Migrator/gateway"
	"github.com/David-HERS/HDF5-Data-Migrator/migrate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, handler http.Handler, target string) response {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func newRepo(t *testing.T) (string, http.Handler) {
	gin.SetMode(gin.TestMode)

	repo := t.TempDir()
	data := filepath.Join(repo, "data")
	require.NoError(t, os.MkdirAll(filepath.Join(data, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "x.dat"), []byte("1 2\n3 4\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "sub", "y.dat"), []byte("5\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "notes.txt"), []byte("notes"), 0644))

	_, err := migrate.NewBuilder(nil).Build(data, migrate.BuildOption{
		MaxDepth: 5,
		Name:     filepath.Join(repo, "data.h5c"),
	})
	require.NoError(t, err)

	config := gateway.DefaultConfig()
	config.Repo = repo
	return repo, gateway.NewHandler(config)
}

func TestGetTree(t *testing.T) {
	_, handler := newRepo(t)

	resp := get(t, handler, "/tree?path=data&depth=1")
	require.Equal(t, api.ErrNil.Code, resp.Code)

	var entries []struct {
		Line  string `json:"line"`
		Depth int    `json:"depth"`
		Dir   bool   `json:"dir"`
		Last  bool   `json:"last"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &entries))

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.Line
	}
	assert.Equal(t, []string{"[0]:data/", "[1]:├── notes.txt", "[1]:├── sub/", "[1]:└── x.dat"}, lines)
	assert.True(t, entries[3].Last)
	assert.True(t, entries[2].Dir)
}

func TestGetTreeCriteria(t *testing.T) {
	_, handler := newRepo(t)

	resp := get(t, handler, "/tree?path=data&depth=2&not_ends=.txt")
	require.Equal(t, 0, resp.Code)

	var entries []struct {
		Line string `json:"line"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "[2]:│   └── y.dat", entries[2].Line)
}

func TestGetTreeCriteriaDefaultsToAnd(t *testing.T) {
	_, handler := newRepo(t)

	resp := get(t, handler, "/tree?path=data&depth=1&not_ends=.txt&not_ends=.dat")
	require.Equal(t, 0, resp.Code)

	var entries []struct {
		Line string `json:"line"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "[1]:└── sub/", entries[1].Line)
}

func TestGetTreeErrors(t *testing.T) {
	_, handler := newRepo(t)

	assert.Equal(t, api.ErrValidation.Code, get(t, handler, "/tree").Code)
	assert.Equal(t, api.ErrValidation.Code, get(t, handler, "/tree?path=data&operator=xor").Code)
	assert.Equal(t, gateway.ErrPathNotFound.Code, get(t, handler, "/tree?path=missing").Code)
	assert.Equal(t, gateway.ErrGlobInvalid.Code, get(t, handler, "/tree?path=data&glob=%5Ba-").Code)
}

func TestPathsOutsideRepoAreForbidden(t *testing.T) {
	repo, handler := newRepo(t)
	outside := url.QueryEscape(filepath.Dir(repo))
	inside := url.QueryEscape(filepath.Join(repo, "data"))

	assert.Equal(t, gateway.ErrPathForbidden.Code, get(t, handler, "/tree?path=..").Code)
	assert.Equal(t, gateway.ErrPathForbidden.Code, get(t, handler, "/tree?path=data%2F..%2F..%2Fetc").Code)
	assert.Equal(t, gateway.ErrPathForbidden.Code, get(t, handler, "/tree?path="+outside).Code)
	assert.Equal(t, gateway.ErrPathForbidden.Code, get(t, handler, "/keys?container=..%2Fdata.h5c").Code)

	assert.Equal(t, api.ErrNil.Code, get(t, handler, "/tree?path="+inside+"&depth=0").Code)
	assert.Equal(t, api.ErrNil.Code, get(t, handler, "/tree?path=data%2Fsub%2F..&depth=0").Code)
}

func TestGetKeys(t *testing.T) {
	_, handler := newRepo(t)

	resp := get(t, handler, "/keys?container=data.h5c")
	require.Equal(t, 0, resp.Code)

	var keys []string
	require.NoError(t, json.Unmarshal(resp.Data, &keys))
	assert.Equal(t, []string{"/", "/sub", "/sub/y.dat", "/x.dat"}, keys)

	resp = get(t, handler, "/keys?container=data.h5c&datasets=true&recursion=1")
	require.NoError(t, json.Unmarshal(resp.Data, &keys))
	assert.Equal(t, []string{"/x.dat"}, keys)

	resp = get(t, handler, "/keys?container=data.h5c&ends=.dat")
	require.NoError(t, json.Unmarshal(resp.Data, &keys))
	assert.Equal(t, []string{"/sub/y.dat", "/x.dat"}, keys)
}

func TestGetKeysErrors(t *testing.T) {
	_, handler := newRepo(t)

	assert.Equal(t, api.ErrValidation.Code, get(t, handler, "/keys").Code)
	assert.Equal(t, gateway.ErrContainerInvalid.Code, get(t, handler, "/keys?container=missing.h5c").Code)
}

func TestMetrics(t *testing.T) {
	_, handler := newRepo(t)

	get(t, handler, "/tree?path=data")
	get(t, handler, "/keys?container=data.h5c")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, `migrator_gateway_requests_total{path="/tree",status="200"} 1`)
	assert.Contains(t, body, `migrator_gateway_requests_total{path="/keys",status="200"} 1`)
	assert.Contains(t, body, "migrator_gateway_keys_listed_count 1")
}
