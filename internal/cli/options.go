package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/logging"
	"github.com/aretw0/scena/pkg/adapters/file"
	"github.com/aretw0/scena/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/scena/pkg/adapters/redis"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/observability"
	"github.com/aretw0/scena/pkg/ports"
	"github.com/aretw0/scena/pkg/session"
	backend "github.com/redis/go-redis/v9"
)

// DefaultDocID names the document a Redis-backed workspace reads and commits.
const DefaultDocID = "canvas"

// Options contains the configuration shared by all commands.
type Options struct {
	// Dir is a Loam repository of layer documents.
	Dir string
	// File is a single YAML document. It takes precedence over Dir.
	File string
	// RedisURL selects a Redis store. It takes precedence over File and Dir.
	RedisURL string
	// DocID is the document key inside the Redis store.
	DocID string
	Debug bool
	// Hooks are combined with the debug logging hooks.
	Hooks domain.LifecycleHooks
}

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout output).
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// NewWorkspace builds a workspace with standard CLI conventions and loads it.
// Redis and .yaml file workspaces also get a store so Commit writes back.
func NewWorkspace(ctx context.Context, opts Options, logger *slog.Logger) (*scena.Workspace, error) {
	hooks := opts.Hooks
	if opts.Debug {
		hooks = observability.Combine(hooks, observability.LoggingHooks(logger))
	}
	wsOpts := []scena.Option{
		scena.WithLogger(logger),
		scena.WithLifecycleHooks(hooks),
	}

	repoPath := opts.Dir
	switch {
	case opts.RedisURL != "":
		store, err := redisStore(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		id := opts.DocID
		if id == "" {
			id = DefaultDocID
		}
		wsOpts = append(wsOpts,
			scena.WithSource(ports.StoreSource{Store: store, ID: id}),
			scena.WithStore(store, id),
			scena.WithLocker(redisAdapter.NewLocker(store.Client(), redisAdapter.DefaultPrefix)),
			scena.WithName(id),
		)
		repoPath = ""
	case opts.File != "":
		dir, id, ok := splitDocumentPath(opts.File)
		wsOpts = append(wsOpts, scena.WithSource(file.NewSource(opts.File)), scena.WithName(id))
		if ok {
			wsOpts = append(wsOpts, scena.WithStore(file.New(dir), id))
		}
		repoPath = ""
	}

	ws, err := scena.New(repoPath, wsOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing workspace: %w", err)
	}
	if err := ws.Load(ctx); err != nil {
		return nil, err
	}
	return ws, nil
}

func redisStore(url string) (*redisAdapter.Store, error) {
	opt, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redisAdapter.NewFromClient(backend.NewClient(opt)), nil
}

// splitDocumentPath maps a YAML path onto the directory and id the file
// store uses for it. ok is false when the store would write a different file.
func splitDocumentPath(path string) (dir, id string, ok bool) {
	ext := filepath.Ext(path)
	dir = filepath.Dir(path)
	id = strings.TrimSuffix(filepath.Base(path), ext)
	return dir, id, ext == ".yaml"
}

// NewSessionManager keeps session selections in Redis when RedisURL is set,
// so server replicas share them, and in memory otherwise.
func NewSessionManager(opts Options, logger *slog.Logger) (*session.Manager, error) {
	if opts.RedisURL == "" {
		return session.NewManager(memory.NewSelectionStore(), session.WithLogger(logger)), nil
	}
	opt, err := backend.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := backend.NewClient(opt)
	return session.NewManager(
		redisAdapter.NewSelectionStore(client),
		session.WithLocker(redisAdapter.NewLocker(client, redisAdapter.DefaultSessionPrefix)),
		session.WithLogger(logger),
	), nil
}
