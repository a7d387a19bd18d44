// Package gateway serves directory previews and container keys over HTTP.
package gateway

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/David-HERS/HDF5-Data-Migrator/common"
	"github.com/David-HERS/HDF5-Data-Migrator/common/api"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config configures the gateway.
type Config struct {
	Endpoint       string   `mapstructure:"endpoint"`
	Repo           string   `mapstructure:"repo"` // base of relative request paths
	OriginsAllowed []string `mapstructure:"origins"`
}

// DefaultConfig serves on localhost with the working directory as repository.
func DefaultConfig() Config {
	return Config{
		Endpoint: "127.0.0.1:6789",
		Repo:     ".",
	}
}

type server struct {
	repo    string
	logger  *logrus.Logger
	metrics *metrics
}

func newServer(config Config, opts ...common.LogOption) *server {
	return &server{
		repo:    config.Repo,
		logger:  common.NewLogger(opts...),
		metrics: newMetrics(),
	}
}

// NewHandler returns the HTTP handler of the gateway.
func NewHandler(config Config, opts ...common.LogOption) http.Handler {
	srv := newServer(config, opts...)
	return api.NewRouter(srv.routes, api.RouterOption{OriginsAllowed: config.OriginsAllowed})
}

// Serve runs the gateway until ctx is done.
func Serve(ctx context.Context, config Config, opts ...common.LogOption) error {
	srv := newServer(config, opts...)
	return api.Serve(ctx, config.Endpoint, srv.routes, api.RouterOption{OriginsAllowed: config.OriginsAllowed})
}

func (srv *server) routes(router *gin.Engine) {
	router.Use(srv.metrics.middleware())
	router.GET("/metrics", srv.metrics.handler())
	router.GET("/tree", api.Wrap(srv.getTree))
	router.GET("/keys", api.Wrap(srv.getKeys))
}

// resolve maps a request path onto the repository. Absolute paths are accepted only
// when they lie below the repository, and relative ones may not climb out of it.
func (srv *server) resolve(path string) (string, error) {
	repo, err := filepath.Abs(srv.repo)
	if err != nil {
		return "", err
	}

	target := filepath.Clean(path)
	if !filepath.IsAbs(target) {
		target = filepath.Join(repo, target)
	}

	rel, err := filepath.Rel(repo, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathForbidden.WithData(path)
	}

	return target, nil
}
