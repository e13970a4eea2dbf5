package source

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/spritekit/pkg/errors"
)

// DefaultDebounce coalesces the several events editors emit for one save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to the PNG files directly inside a directory.
type Watcher struct {
	// Debounce is how long the directory must be quiet before onChange runs.
	Debounce time.Duration

	fw      *fsnotify.Watcher
	dir     string
	ignored map[string]bool
}

// NewWatcher starts watching dir. Events that happen before [Watcher.Run]
// is called are still delivered.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
	}
	return &Watcher{Debounce: DefaultDebounce, fw: fw, dir: dir}, nil
}

// Ignore drops events for the given files, typically outputs written into
// the watched directory.
func (w *Watcher) Ignore(paths ...string) error {
	set, err := absSet(paths)
	if err != nil {
		return err
	}
	if w.ignored == nil {
		w.ignored = set
		return nil
	}
	for p := range set {
		w.ignored[p] = true
	}
	return nil
}

// Run calls onChange once per burst of image changes until ctx is done.
// The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !isImageEvent(ev) || w.isIgnored(ev.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", w.dir)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// Close stops the watcher without running it.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) isIgnored(path string) bool {
	if len(w.ignored) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	return err == nil && w.ignored[abs]
}

func isImageEvent(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".png") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
