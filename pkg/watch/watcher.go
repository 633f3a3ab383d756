package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches SBOM files for changes and triggers re-validation.
// Changes are debounced so a file being written in several chunks starts
// one validation run, not one per write.
//
// A watcher runs a single Watch at a time and cannot be restarted after
// Stop.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	mu       sync.RWMutex
	running  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Config controls what the watcher looks at and how eagerly it reacts.
type Config struct {
	// Path names the watched file, or a directory watched recursively
	Path string

	// DebounceInterval is the quiet period after the last event before
	// re-validation fires (default: 500ms)
	DebounceInterval time.Duration

	// Extensions limits watching to these file extensions, compared
	// case-insensitively (e.g. ".json")
	Extensions []string

	// SkipHidden ignores dotfiles and dot-directories
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: 500 * time.Millisecond,
		Extensions:       []string{".json"},
		SkipHidden:       true,
	}
}

// NewFileWatcher builds a watcher for config.Path. A nil config gets
// DefaultConfig; a nil logger gets the process default.
func NewFileWatcher(config *Config, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if logger == nil {
		logger = slog.Default().With("component", "watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch starts watching for file changes and invokes onChange with the
// path of the changed file once the debounce interval has passed. When
// several files change within one debounce window, only the most recent
// path is reported.
//
// Watch blocks until the context is cancelled or Stop is called.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(path string) error) error {
	if err := fw.begin(); err != nil {
		return err
	}
	defer fw.end()

	if err := fw.watchTarget(fw.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("watching for changes",
		"path", fw.config.Path,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("watch cancelled")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("watch stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			fw.handleEvent(event, onChange)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("watch error", "error", err)
		}
	}
}

func (fw *FileWatcher) begin() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	return nil
}

func (fw *FileWatcher) end() {
	fw.mu.Lock()
	fw.running = false
	fw.mu.Unlock()
	close(fw.doneCh)
}

// handleEvent filters one fsnotify event and schedules re-validation for
// it. Directories created under the watched tree join the watch set so
// that SBOMs dropped into them are picked up too.
func (fw *FileWatcher) handleEvent(event fsnotify.Event, onChange func(path string) error) {
	if event.Op.Has(fsnotify.Create) {
		if isDir, err := isDirectory(event.Name); err == nil && isDir {
			if !fw.skipAsHidden(event.Name) {
				if err := fw.watchTree(event.Name); err != nil {
					fw.logger.Warn("could not watch new directory",
						"path", event.Name,
						"error", err,
					)
				}
			}
			return
		}
	}

	if !fw.shouldProcessEvent(event) {
		return
	}

	fw.logger.Debug("file event",
		"path", event.Name,
		"op", event.Op.String(),
	)

	changed := event.Name
	fw.debounce.Trigger(func() {
		fw.logger.Info("file changed", "path", changed)

		if err := onChange(changed); err != nil {
			fw.logger.Error("change handler failed",
				"path", changed,
				"error", err,
			)
		}
	})
}

// Stop ends a running Watch and releases the underlying fsnotify
// resources. It is safe to call more than once, and also releases the
// resources of a watcher that never started.
func (fw *FileWatcher) Stop() error {
	var err error

	fw.stopOnce.Do(func() {
		fw.mu.RLock()
		running := fw.running
		fw.mu.RUnlock()

		if running {
			close(fw.stopCh)
			<-fw.doneCh
		}

		fw.debounce.Stop()
		err = fw.watcher.Close()
	})

	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// watchTarget registers the configured path, recursing when it names a
// directory.
func (fw *FileWatcher) watchTarget(path string) error {
	isDir, err := isDirectory(path)
	if err != nil {
		return err
	}

	if isDir {
		return fw.watchTree(path)
	}
	return fw.watcher.Add(path)
}

// watchTree registers root and every subdirectory below it. fsnotify
// watches are per-directory, so each level needs its own entry.
func (fw *FileWatcher) watchTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != root && fw.skipAsHidden(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("directory added to watch set", "path", path)
		return nil
	})
}

// shouldProcessEvent reports whether an event warrants re-validation.
// Chmod events, files outside the configured extensions, and hidden
// files are ignored.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}

	if !fw.hasValidExtension(strings.ToLower(filepath.Ext(event.Name))) {
		return false
	}

	return !fw.skipAsHidden(event.Name)
}

// hasValidExtension reports whether ext is one of the watched
// extensions. ext must already be lowercased.
func (fw *FileWatcher) hasValidExtension(ext string) bool {
	for _, want := range fw.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// skipAsHidden reports whether path should be ignored as hidden.
func (fw *FileWatcher) skipAsHidden(path string) bool {
	return fw.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

// isDirectory reports whether path names a directory.
func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
