package state

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// SessionFileChangedMsg is sent after the session file changed on disk and
// was reloaded.
type SessionFileChangedMsg struct {
	Path string
}

type SessionWatcherErrMsg struct {
	Err error
}

// Reloader re-reads a session from its durable store.
type Reloader interface {
	Reload() error
}

// SessionWatcher reloads the session whenever another process rewrites the
// session file, so a logout in one terminal reaches every open TUI.
type SessionWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	reloader Reloader
	logger   *zap.Logger
	msgs     chan tea.Msg
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

func NewSessionWatcher(path string, reloader Reloader, logger *zap.Logger) (*SessionWatcher, error) {
	if path == "" {
		return nil, errors.New("session file cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// the file is replaced by rename, so watch its directory
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &SessionWatcher{
		watcher:  w,
		path:     abs,
		reloader: reloader,
		logger:   logger,
		msgs:     make(chan tea.Msg, 8),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *SessionWatcher) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}

			if err := w.reloader.Reload(); err != nil {
				w.logger.Warn("session reload failed", zap.String("path", w.path), zap.Error(err))
				w.publish(SessionWatcherErrMsg{Err: err})
				continue
			}
			w.publish(SessionFileChangedMsg{Path: w.path})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Warn("session watcher error", zap.Error(err))
				w.publish(SessionWatcherErrMsg{Err: err})
			}
		}
	}
}

// publish drops the message when nobody is listening.
func (w *SessionWatcher) publish(msg tea.Msg) {
	select {
	case w.msgs <- msg:
	default:
	}
}

// Start waits for the next watcher message. Re-issue it after every message.
func (w *SessionWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case <-w.done:
			return nil
		case msg := <-w.msgs:
			return msg
		}
	}
}

func (w *SessionWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		<-w.stopped
	})

	return closeErr
}

func (w *SessionWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
