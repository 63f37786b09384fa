package orm

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/gitweb/lib/consoles"
	"github.com/pescuma/gitweb/lib/model"
	"github.com/pescuma/gitweb/lib/storages"
)

func newMemoryStorage(t *testing.T) storages.Storage {
	s, err := NewGormStorage(WithSqliteInMemory(), consoles.NewMemoryConsole())
	require.Nil(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEqualsSomeFields(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c1 := &sqlConfig{Key: "a", Value: "1", CreatedAt: now}
	c2 := &sqlConfig{Key: "a", Value: "1", CreatedAt: now}

	assert.True(t, reflect.DeepEqual(c1, c2))

	c1.Value = "2"
	assert.False(t, reflect.DeepEqual(c1, c2))
}

func TestPrepareChangeKeepsTimestamps(t *testing.T) {
	t.Parallel()

	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := map[string]*sqlConfig{
		"a": {Key: "a", Value: "1", CreatedAt: created, UpdatedAt: created},
	}

	assert.False(t, prepareChange(&cache, newSqlConfig("a", "1")))

	changed := newSqlConfig("a", "2")
	assert.True(t, prepareChange(&cache, changed))
	assert.Equal(t, created, changed.CreatedAt)
	assert.Same(t, changed, cache["a"])

	assert.True(t, prepareChange(&cache, newSqlConfig("b", "1")))
}

func TestConfigRoundTrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "gitweb.sqlite")

	s, err := NewGormStorage(WithSqlite(file), consoles.NewMemoryConsole())
	require.Nil(t, err)

	cfg, err := s.LoadConfig()
	require.Nil(t, err)
	assert.Empty(t, *cfg)

	(*cfg)["git.cmd"] = "/usr/bin/git"
	(*cfg)["diff.context"] = "5"
	require.Nil(t, s.WriteConfig())

	delete(*cfg, "diff.context")
	require.Nil(t, s.WriteConfig())
	require.Nil(t, s.Close())

	s, err = NewGormStorage(WithSqlite(file), consoles.NewMemoryConsole())
	require.Nil(t, err)
	defer s.Close()

	cfg, err = s.LoadConfig()
	require.Nil(t, err)
	assert.Equal(t, map[string]string{"git.cmd": "/usr/bin/git"}, *cfg)
}

func TestWriteConfigBeforeLoad(t *testing.T) {
	t.Parallel()

	s := newMemoryStorage(t)

	assert.Nil(t, s.WriteConfig())
}

func TestHistorySessions(t *testing.T) {
	t.Parallel()

	s := newMemoryStorage(t)

	session := model.NewHistorySession("/repo", "HEAD")
	session.NextRef = "0123456789abcdef0123456789abcdef01234567"
	session.Loaded = 1000
	session.State = json.RawMessage(`{"streams":[]}`)

	require.Nil(t, s.WriteHistorySession(session))

	loaded, err := s.LoadHistorySession(session.ID)
	require.Nil(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, "HEAD", loaded.Ref)
	assert.Equal(t, 1000, loaded.Loaded)
	assert.JSONEq(t, `{"streams":[]}`, string(loaded.State))
	assert.True(t, loaded.HasMore())

	session.NextRef = ""
	session.Loaded = 1200
	require.Nil(t, s.WriteHistorySession(session))

	loaded, err = s.LoadHistorySession(session.ID)
	require.Nil(t, err)
	assert.Equal(t, 1200, loaded.Loaded)
	assert.False(t, loaded.HasMore())

	require.Nil(t, s.DeleteHistorySession(session.ID))

	_, err = s.LoadHistorySession(session.ID)
	assert.ErrorIs(t, err, storages.ErrNotFound)
}

func TestDeleteOldHistorySessions(t *testing.T) {
	t.Parallel()

	s := newMemoryStorage(t)

	old := model.NewHistorySession("/repo", "HEAD")
	old.LastSeen = time.Now().Add(-48 * time.Hour)
	recent := model.NewHistorySession("/repo", "main")

	require.Nil(t, s.WriteHistorySession(old))
	require.Nil(t, s.WriteHistorySession(recent))

	count, err := s.DeleteHistorySessionsBefore(time.Now().Add(-24 * time.Hour))
	require.Nil(t, err)
	assert.Equal(t, 1, count)

	_, err = s.LoadHistorySession(old.ID)
	assert.ErrorIs(t, err, storages.ErrNotFound)
	_, err = s.LoadHistorySession(recent.ID)
	assert.Nil(t, err)
}
