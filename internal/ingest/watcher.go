package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures StartWatcher.
type WatchConfig struct {
	Roots       []string
	AllowedExts []string
	SkipHidden  bool
	// InitialScan emits files already present when the watch starts.
	InitialScan bool
	// Debounce coalesces bursts of write events for the same file. Scanners
	// and copy tools write PDFs in many chunks.
	Debounce time.Duration
	Logger   *slog.Logger
}

// StartWatcher watches the roots recursively and emits the path of each
// statement file that is created, written or renamed into place. Both channels
// close when ctx is done.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		return nil, nil, errors.New("no roots provided")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	exts := extensionSet(cfg.AllowedExts)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("watch.start_failed", "err", err)
		return nil, nil, err
	}

	var initial []string
	addTree := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if cfg.SkipHidden && path != root && IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && exts.allows(path) {
				initial = append(initial, path)
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addTree(r); err != nil {
			logger.Error("watch.add_root_failed", "root", r, "err", err)
			_ = w.Close()
			return nil, nil, err
		}
	}
	logger.Info("watch.started", "roots", cfg.Roots, "initial", len(initial))

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)
	d := &debouncer{delay: cfg.Debounce, out: evCh, pending: map[string]*time.Timer{}}

	go func() {
		defer close(errCh)
		defer close(evCh)
		defer func() {
			d.stop()
			if err := w.Close(); err != nil {
				logger.Warn("watch.close_failed", "err", err)
			}
		}()

		for _, p := range initial {
			select {
			case evCh <- p:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if cfg.SkipHidden && IsHidden(e.Name) {
					continue
				}
				if e.Has(fsnotify.Create) {
					if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
						if err := addTree(e.Name); err != nil {
							logger.Warn("watch.add_dir_failed", "path", e.Name, "err", err)
						}
						continue
					}
				}
				if exts.allows(e.Name) && (e.Has(fsnotify.Create) || e.Has(fsnotify.Write) || e.Has(fsnotify.Rename)) {
					d.touch(ctx, e.Name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watch.error", "err", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

// debouncer emits a path once no event for it has arrived for delay.
type debouncer struct {
	delay   time.Duration
	out     chan<- string
	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func (d *debouncer) touch(ctx context.Context, path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.pending[path]; ok && t.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if d.pending[path] == t {
			delete(d.pending, path)
		}
		d.mu.Unlock()
		select {
		case d.out <- path:
		case <-ctx.Done():
		}
	})
	d.pending[path] = t
}

// stop cancels pending timers and waits for any that already fired, so the
// output channel can be closed safely afterwards.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	for p, t := range d.pending {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.pending, p)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
