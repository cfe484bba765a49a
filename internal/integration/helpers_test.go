package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/sir_venger/filedrop/internal/app/filehttp"
	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/pkg/filedropclient"
	"github.com/stretchr/testify/require"
)

type stack struct {
	cfg    *config.Config
	srv    *filehttp.Server
	url    string
	client filedropclient.Client
}

// startStack поднимает сервис так же, как cmd/filedrop: конфиг -> NewServer -> HTTP.
func startStack(t *testing.T, tune func(*config.Config)) *stack {
	t.Helper()

	cfg := config.Default()
	cfg.ListenAddr = ":0"
	cfg.UploadDir = t.TempDir()
	if tune != nil {
		tune(cfg)
	}
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, srv, err := filehttp.NewServer(context.Background(), cfg, filehttp.Options{Log: logger})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &stack{
		cfg:    cfg,
		srv:    srv,
		url:    ts.URL,
		client: filedropclient.New(ts.URL),
	}
}
