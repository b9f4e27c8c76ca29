// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when files under an extension root change.
//
// Filesystem events are filtered through doublestar include and ignore
// patterns and coalesced over a debounce window. The callback runs on the
// event loop goroutine, so two invocations never overlap; events that arrive
// while it runs are folded into the next batch.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// ErrAlreadyRunning is returned when Run is called a second time.
var ErrAlreadyRunning = errors.New("watch: Run called more than once")

// defaultIgnores never trigger a re-run: VCS metadata, build caches and
// editor scratch files.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/web-ext-artifacts/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the extension root. Empty means the working directory.
		Root string
		// Patterns select the files, relative to Root, whose changes trigger
		// OnChange. An empty slice accepts every non-ignored file.
		Patterns []string
		// Ignore extends the built-in ignore patterns.
		Ignore []string
		// Files are watched regardless of Patterns and Ignore and may live
		// outside Root, like an explicit config file. Only their parent
		// directory is watched, not its subtree.
		Files []string
		// Debounce is the quiet period after the last event. Zero or negative
		// falls back to 500ms.
		Debounce time.Duration
		// OnChange receives the sorted, deduplicated changed paths, relative
		// to Root and slash-separated. Paths of Files outside Root start
		// with "../".
		OnChange func(ctx context.Context, changed []string)
		// Logger receives diagnostics; nil uses the logger in the Run context.
		Logger *log.Logger
	}

	// Watcher monitors an extension root. Run must be called exactly once.
	Watcher struct {
		cfg     Config
		fsw     *fsnotify.Watcher
		root    string
		files   map[string]string // absolute path -> reported path
		filters atomic.Pointer[filters]
		started atomic.Bool
	}

	// filters is the part of the configuration Reconfigure can swap while
	// Run is active.
	filters struct {
		patterns []string
		ignores  []string
		debounce time.Duration
	}
)

// New validates cfg, resolves the root and registers every non-ignored
// directory below it.
func New(cfg Config) (*Watcher, error) {
	f, err := newFilters(cfg.Patterns, cfg.Ignore, cfg.Debounce)
	if err != nil {
		return nil, err
	}

	root := cfg.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:   cfg,
		fsw:   fsw,
		root:  absRoot,
		files: make(map[string]string, len(cfg.Files)),
	}
	w.filters.Store(f)
	if err := w.addTree(absRoot); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := w.addFiles(cfg.Files); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Reconfigure replaces the watch patterns, ignore patterns and debounce
// window. It is safe to call from OnChange or any other goroutine. On error
// the previous settings stay in effect.
func (w *Watcher) Reconfigure(patterns, ignore []string, debounce time.Duration) error {
	f, err := newFilters(patterns, ignore, debounce)
	if err != nil {
		return err
	}
	w.filters.Store(f)
	// Directories that were ignored before may be wanted now.
	return w.addTree(w.root)
}

func newFilters(patterns, ignore []string, debounce time.Duration) (*filters, error) {
	if err := validatePatterns("watch", patterns); err != nil {
		return nil, err
	}
	if err := validatePatterns("ignore", ignore); err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &filters{
		patterns: slices.Clone(patterns),
		ignores:  append(slices.Clone(defaultIgnores), ignore...),
		debounce: debounce,
	}, nil
}

// Run processes events until ctx is canceled. It returns nil on
// cancellation and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	logger := w.cfg.Logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			logger.Warn("close watcher", "err", err)
		}
	}()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.filters.Load().debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Create) {
				w.addNewDir(evt.Name, logger)
			}
			rel, ok := w.relevant(evt.Name)
			if !ok {
				continue
			}
			logger.Debug("change detected", "path", rel, "op", evt.Op.String())
			pending[rel] = struct{}{}
			timer.Reset(w.filters.Load().debounce)

		case <-timer.C:
			if len(pending) == 0 || ctx.Err() != nil {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			if w.cfg.OnChange != nil {
				w.cfg.OnChange(ctx, changed)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			logger.Warn("fsnotify error", "err", err)
		}
	}
}

// relevant maps an absolute event path to its slash-separated path relative
// to the root and reports whether it should trigger a run.
func (w *Watcher) relevant(name string) (string, bool) {
	if rel, ok := w.files[name]; ok {
		return rel, true
	}
	rel, ok := w.inRoot(name)
	if !ok {
		return "", false
	}
	f := w.filters.Load()
	if matchAny(f.ignores, rel) {
		return "", false
	}
	return rel, len(f.patterns) == 0 || matchAny(f.patterns, rel)
}

// inRoot returns the slash-separated path of name below the root.
func (w *Watcher) inRoot(name string) (string, bool) {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// addFiles registers the parent directory of every extra file.
func (w *Watcher) addFiles(files []string) error {
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", file, err)
		}
		rel, err := filepath.Rel(w.root, abs)
		if err != nil {
			rel = abs
		}
		w.files[abs] = filepath.ToSlash(rel)
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch: add directory of %q: %w", file, err)
		}
	}
	return nil
}

// addTree registers dir and every non-ignored directory below it.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			// Unreadable subdirectories are left unwatched.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.root, path); relErr == nil && rel != "." {
			if w.ignoredDir(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", dir, err)
	}
	return nil
}

// addNewDir extends the watch to a directory created after startup, such as
// a freshly added scripts/pages folder.
func (w *Watcher) addNewDir(path string, logger *log.Logger) {
	if _, ok := w.inRoot(path); !ok {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		logger.Warn("watch new directory", "path", path, "err", err)
	}
}

func (w *Watcher) ignoredDir(rel string) bool {
	ignores := w.filters.Load().ignores
	return matchAny(ignores, rel) || matchAny(ignores, rel+"/")
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func validatePatterns(label string, patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}
