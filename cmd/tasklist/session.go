package main

import (
	"fmt"
	"log"
	"path/filepath"

	"tasklist/app"
	"tasklist/config"
	"tasklist/store"
)

const sqliteFileName = "tasklist.db"

// session is everything a command needs to work on the collection.
type session struct {
	cfg   *config.Config
	svc   *app.Service
	close func() error
}

func openSession(logger *log.Logger) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	st, closeFn, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:   cfg,
		svc:   app.NewService(st),
		close: closeFn,
	}, nil
}

func (s *session) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// openStore builds the configured backend. The returned func releases it.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, func() error, error) {
	opts := []store.Option{store.WithKey(cfg.Storage.Key), store.WithLogger(logger)}
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return store.New(store.NewMemoryKV(), opts...), noop, nil
	case config.BackendSQLite:
		dir, err := cfg.StateDir()
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.OpenSQLite(filepath.Join(dir, sqliteFileName))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store.New(kv, opts...), kv.Close, nil
	default:
		dir, err := cfg.StateDir()
		if err != nil {
			return nil, nil, err
		}
		return store.New(store.NewFileKV(dir), opts...), noop, nil
	}
}
