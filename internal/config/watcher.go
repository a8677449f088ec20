// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/pflag"

	"github.com/holomush/disguise/pkg/errutil"
)

// Reloader applies a freshly loaded configuration. It must either apply
// all of it or none of it.
type Reloader interface {
	Reload(ctx context.Context, cfg *Config) error
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func(ctx context.Context, cfg *Config) error

// Reload calls f.
func (f ReloaderFunc) Reload(ctx context.Context, cfg *Config) error { return f(ctx, cfg) }

// Default watcher timings.
const (
	DefaultDebounce   = 200 * time.Millisecond
	DefaultRetryBase  = 50 * time.Millisecond
	DefaultMaxRetries = 4
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must be quiet before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithRetry sets the backoff for reads that fail while the file is being replaced.
func WithRetry(base time.Duration, maxRetries uint64) WatcherOption {
	return func(w *Watcher) {
		w.retryBase = base
		w.maxRetries = maxRetries
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// WithResultHook registers a function called after every reload attempt
// with its outcome.
func WithResultHook(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onResult = fn }
}

// Watcher reloads the configuration file when it changes. A reload that
// fails leaves the previous configuration in effect.
type Watcher struct {
	path       string
	dir        string
	flags      *pflag.FlagSet
	reloader   Reloader
	logger     *slog.Logger
	debounce   time.Duration
	retryBase  time.Duration
	maxRetries uint64
	onResult   func(error)

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the file at path. The flags are re-applied
// on every reload so command-line overrides survive.
func NewWatcher(path string, flags *pflag.FlagSet, r Reloader, opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, oops.In("config").Code("INVALID_CONFIG").Errorf("watcher needs a configuration file")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, oops.In("config").With("path", path).Wrap(err)
	}
	w := &Watcher{
		path:       abs,
		dir:        filepath.Dir(abs),
		flags:      flags,
		reloader:   r,
		logger:     slog.Default(),
		debounce:   DefaultDebounce,
		retryBase:  DefaultRetryBase,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It returns once the watch is established.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return oops.In("config").Wrapf(err, "create file watcher")
	}
	// editors and config managers replace the file, so the directory is watched
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return oops.In("config").With("dir", w.dir).Wrapf(err, "watch configuration directory")
	}

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx, fsw, w.stopCh, w.doneCh)

	w.logger.Info("watching configuration", "path", w.path)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh, doneCh, fsw := w.stopCh, w.doneCh, w.fsw
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	if err := fsw.Close(); err != nil {
		w.logger.Warn("closing file watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		case <-timer.C:
			_ = w.Reload(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

// Reload loads the file and hands it to the reloader, retrying failures that
// come from reading a file mid-write. It returns the final error, if any.
func (w *Watcher) Reload(ctx context.Context) error {
	backoff := retry.WithMaxRetries(w.maxRetries, retry.NewExponential(w.retryBase))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		cfg, err := Load(w.path, w.flags)
		if err != nil {
			if transient(err) {
				w.logger.Debug("configuration not readable yet", "path", w.path, "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		return w.reloader.Reload(ctx, cfg)
	})

	if err != nil {
		errutil.LogErrorContext(ctx, w.logger, "configuration reload failed", err, "path", w.path, "attempts", attempt)
	} else {
		w.logger.Info("configuration reloaded", "path", w.path)
	}
	if w.onResult != nil {
		w.onResult(err)
	}
	return err
}

// transient reports whether a load failure may go away on its own.
func transient(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	switch oopsErr.Code() {
	case "READ_FAILED", "PARSE_FAILED", "EMPTY_CONFIG":
		return true
	}
	return false
}
