// Package watch monitors a drop directory for new media files and feeds
// them to the analysis pool. This gives batch producers a file-based
// alternative to the HTTP surface; results land next to each file as a
// JSON sidecar.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/analyze"
)

// Media extensions routed to the audio and video pipelines. Anything else
// in the drop directory is ignored.
var (
	audioExts = map[string]bool{".wav": true, ".mp3": true, ".m4a": true, ".ogg": true, ".flac": true}
	videoExts = map[string]bool{".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true}
)

// Watcher monitors a directory tree for new media files.
type Watcher struct {
	pool     *analyze.Pool
	watchDir string
	debounce time.Duration
	log      zerolog.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}

	// Debounce: coalesce rapid Create+Write events on the same file.
	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer

	filesEnqueued atomic.Int64
	filesSkipped  atomic.Int64
	status        atomic.Value // string: "starting", "watching", "stopped"
}

// New creates a watcher feeding the given analysis pool.
func New(pool *analyze.Pool, watchDir string, debounce time.Duration, log zerolog.Logger) *Watcher {
	w := &Watcher{
		pool:           pool,
		watchDir:       watchDir,
		debounce:       debounce,
		log:            log.With().Str("component", "watcher").Logger(),
		done:           make(chan struct{}),
		debounceTimers: make(map[string]*time.Timer),
	}
	w.status.Store("starting")
	return w
}

// Start initializes the fsnotify watcher over the directory tree and begins
// watching for new media files.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fsw

	dirCount := 0
	err = filepath.WalkDir(w.watchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Warn().Err(err).Str("path", path).Msg("error walking directory")
			return nil // continue walking
		}
		if d.IsDir() {
			if addErr := fsw.Add(path); addErr != nil {
				w.log.Warn().Err(addErr).Str("path", path).Msg("failed to watch directory")
			} else {
				dirCount++
			}
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return err
	}

	w.log.Info().
		Int("directories", dirCount).
		Str("watch_dir", w.watchDir).
		Msg("media watcher initialized")

	w.status.Store("watching")
	go w.watchLoop()
	return nil
}

// Stop closes the fsnotify watcher and cancels pending debounce timers so
// nothing is enqueued into a pool that is shutting down.
func (w *Watcher) Stop() {
	w.status.Store("stopped")
	close(w.done)

	w.debounceMu.Lock()
	for path, t := range w.debounceTimers {
		t.Stop()
		delete(w.debounceTimers, path)
	}
	w.debounceMu.Unlock()

	if w.watcher != nil {
		w.watcher.Close()
	}
	w.log.Info().
		Int64("files_enqueued", w.filesEnqueued.Load()).
		Int64("files_skipped", w.filesSkipped.Load()).
		Msg("media watcher stopped")
}

// Status reports watcher state for the health endpoint.
type Status struct {
	Status        string `json:"status"`
	WatchDir      string `json:"watch_dir"`
	FilesEnqueued int64  `json:"files_enqueued"`
	FilesSkipped  int64  `json:"files_skipped"`
}

// Stats returns the current watcher status.
func (w *Watcher) Stats() Status {
	s, _ := w.status.Load().(string)
	return Status{
		Status:        s,
		WatchDir:      w.watchDir,
		FilesEnqueued: w.filesEnqueued.Load(),
		FilesSkipped:  w.filesSkipped.Load(),
	}
}

// watchLoop is the main event loop that processes fsnotify events.
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// New directory: add it to the watch set so drops into fresh
			// subdirectories are caught too.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.watcher.Add(event.Name); err != nil {
					w.log.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
				} else {
					w.log.Debug().Str("path", event.Name).Msg("watching new directory")
				}
				continue
			}

			if kindFor(event.Name) == "" {
				continue
			}

			w.scheduleEnqueue(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("fsnotify error")
		}
	}
}

// scheduleEnqueue debounces enqueueing. This coalesces rapid Create+Write
// events and lets large media files finish writing before analysis starts.
func (w *Watcher) scheduleEnqueue(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if t, ok := w.debounceTimers[path]; ok {
		t.Reset(w.debounce)
		return
	}

	w.debounceTimers[path] = time.AfterFunc(w.debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		w.enqueue(path)
	})
}

func (w *Watcher) enqueue(path string) {
	// Skip files whose sidecar already exists.
	if _, err := os.Stat(path + ".analysis.json"); err == nil {
		w.filesSkipped.Add(1)
		return
	}

	kind := kindFor(path)
	if !w.pool.Enqueue(analyze.Job{MediaPath: path, Kind: kind}) {
		w.filesSkipped.Add(1)
		w.log.Warn().Str("path", path).Msg("analysis queue full, dropping file")
		return
	}

	w.filesEnqueued.Add(1)
	w.log.Debug().Str("path", path).Str("kind", kind).Msg("media file enqueued")
}

// kindFor routes a file to a pipeline by extension; empty means ignore.
func kindFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case audioExts[ext]:
		return analyze.KindAudio
	case videoExts[ext]:
		return analyze.KindVideo
	}
	return ""
}
