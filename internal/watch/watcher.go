// Package watch re-runs the include check whenever the thesis tree changes
// on disk.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/logging"
	"github.com/kingrea/texkeep/internal/maintain"
)

// Watcher monitors the thesis tree and triggers a fresh scan after .tex
// files are created, written, renamed or removed. Rapid event bursts (an
// editor saving, a scaffold run) are debounced into a single scan.
type Watcher struct {
	maint     *maintain.Maintainer
	thesisDir string
	texExt    string
	log       *logging.Logger

	fsw      *fsnotify.Watcher
	debounce time.Duration
	reports  chan maintain.Report
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New builds a watcher over the configured thesis directory.
func New(cfg *config.Config, maint *maintain.Maintainer, log *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		maint:     maint,
		thesisDir: cfg.ThesisDir,
		texExt:    cfg.TexExtension(),
		log:       log,
		fsw:       fsw,
		debounce:  500 * time.Millisecond,
		reports:   make(chan maintain.Report, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Reports delivers the result of each triggered scan. The channel holds one
// report; a pending unread report is replaced by the newer one.
func (w *Watcher) Reports() <-chan maintain.Report {
	return w.reports
}

// Start registers the directory tree with the watcher and begins the event
// loop. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.thesisDir); err != nil {
		return err
	}
	go w.loop(ctx)
	return nil
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == config.TexkeepDir {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch: %v", err)
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				// A new directory (e.g. a freshly scaffolded chapter)
				// must be registered before events inside it arrive.
				if err := w.addTree(event.Name); err != nil {
					w.log.Debug("watch: add %s: %v", event.Name, err)
				}
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			w.rescan()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	// Directory events matter too: a new scaffolded tree carries .tex
	// files we have not seen yet.
	return strings.Contains(name, w.texExt) || filepath.Ext(name) == ""
}

func (w *Watcher) rescan() {
	report, err := w.maint.Scan()
	if err != nil {
		w.log.Error("watch: scan: %v", err)
		return
	}
	w.log.Info("watch: scan finished, %d broken include(s), %d finding(s)",
		report.BrokenIncludes, len(report.Findings))
	select {
	case w.reports <- report:
	default:
		select {
		case <-w.reports:
		default:
		}
		w.reports <- report
	}
}
