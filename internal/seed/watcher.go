package seed

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"campuslink/internal/logging"
)

// debounceWindow absorbs the bursts of write events editors emit for a
// single save.
const debounceWindow = 200 * time.Millisecond

// Watcher watches a seed file and delivers freshly parsed data on Reloads
// whenever the file changes. It exists for dev mode: edit the YAML, watch
// the shell repopulate without restarting.
type Watcher struct {
	// Reloads delivers the re-parsed seed data. Closed when the watcher
	// stops. A slow receiver only ever misses intermediate states; the
	// latest parse is always delivered or pending.
	Reloads chan Data

	path string
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the given seed file.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		Reloads: make(chan Data, 1),
		path:    path,
		fsw:     fsw,
		done:    make(chan struct{}),
	}
	go w.run()
	logging.Seed("watching seed file %s", path)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit. Reloads is
// closed afterwards.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Reloads)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			d, err := Load(w.path)
			if err != nil {
				logging.SeedWarn("seed reload failed: %v", err)
				continue
			}
			// Replace a pending delivery rather than block the loop.
			select {
			case w.Reloads <- d:
			default:
				select {
				case <-w.Reloads:
				default:
				}
				w.Reloads <- d
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
