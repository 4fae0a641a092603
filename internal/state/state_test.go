package state

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/config"
	"github.com/Paintersrp/noted/internal/session"
	"github.com/Paintersrp/noted/internal/storage"
)

func TestNewWithMemoryStorage(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Storage = config.StorageMemory

	s, err := New(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &storage.MemoryStore{}, s.KV)
	assert.Nil(t, s.Watcher)
	assert.False(t, s.Sessions.Current().Authenticated())
	assert.NotNil(t, s.API)
	assert.NotNil(t, s.Editor)
	assert.NotNil(t, s.Renderer)
}

func TestNewWithFileStorage(t *testing.T) {
	cfg := config.Default(t.TempDir())

	s, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.IsType(t, &storage.FileStore{}, s.KV)
	require.NotNil(t, s.Watcher)

	require.NoError(t, s.Close())
	assert.Nil(t, s.Watcher)
	require.NoError(t, s.Close())
}

func TestNewRejectsBadAPIURL(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Storage = config.StorageMemory
	cfg.APIURL = "::nope"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestLoadConfigCreatesFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadConfig(home, "", nil)
	require.NoError(t, err)
	assert.FileExists(t, config.GetConfigPath(home))
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)

	custom := filepath.Join(home, "elsewhere", "noted.yaml")
	cfg, err = LoadConfig(home, custom, nil)
	require.NoError(t, err)
	assert.Equal(t, custom, cfg.GetConfigPath())
}

func TestSessionWatcherFollowsOtherProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	mine, err := storage.NewFileStore(path)
	require.NoError(t, err)
	sessions := session.New(mine, zap.NewNop())

	changed := make(chan session.Session, 16)
	sessions.Subscribe(func(s session.Session) { changed <- s })

	w, err := NewSessionWatcher(path, sessions, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	theirs, err := storage.NewFileStore(path)
	require.NoError(t, err)
	other := session.New(theirs, zap.NewNop())
	require.NoError(t, other.SetToken("tok-from-elsewhere", nil))

	select {
	case s := <-changed:
		assert.Equal(t, "tok-from-elsewhere", s.Token)
	case <-time.After(5 * time.Second):
		t.Fatal("session change was not picked up")
	}

	msg := w.Start()()
	assert.IsType(t, SessionFileChangedMsg{}, msg)

	require.NoError(t, other.Logout())
	require.Eventually(t, func() bool {
		return !sessions.Current().Authenticated()
	}, 5*time.Second, 20*time.Millisecond)
}

func TestSessionWatcherStartAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	kv, err := storage.NewFileStore(path)
	require.NoError(t, err)

	w, err := NewSessionWatcher(path, session.New(kv, nil), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var msg tea.Msg = w.Start()()
	assert.Nil(t, msg)

	var nilWatcher *SessionWatcher
	assert.Nil(t, nilWatcher.Start())
	assert.NoError(t, nilWatcher.Close())
}

func TestSessionWatcherRejectsEmptyPath(t *testing.T) {
	_, err := NewSessionWatcher("", nil, nil)
	assert.Error(t, err)
}
