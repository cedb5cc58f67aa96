//go:build unit
// +build unit

package app

import (
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemorySessionStore(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := newMemorySessionStore(30*time.Minute, clock.Now, logger)

	t.Run("ReadBeforeAnyResult", func(t *testing.T) {
		id := store.NewSession()
		_, _, err := store.Read(id, workbench.ArtifactAESKey)
		assert.ErrorIs(t, err, workbench.ErrNoArtifact)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		_, _, err := store.Read("missing", workbench.ArtifactSignature)
		assert.ErrorIs(t, err, workbench.ErrNoArtifact)
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		id := store.NewSession()
		store.Update(id, func(rc *workbench.ResultContext) { rc.Signature = "first" })
		store.Update(id, func(rc *workbench.ResultContext) { rc.Signature = "second" })

		content, fileName, err := store.Read(id, workbench.ArtifactSignature)
		require.NoError(t, err)
		assert.Equal(t, "second", content)
		assert.Equal(t, "signature.txt", fileName)
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		a := store.NewSession()
		b := store.NewSession()
		store.Update(a, func(rc *workbench.ResultContext) { rc.AESKey = "AAAA" })

		_, _, err := store.Read(b, workbench.ArtifactAESKey)
		assert.ErrorIs(t, err, workbench.ErrNoArtifact)

		snapshot, ok := store.Snapshot(a)
		require.True(t, ok)
		assert.Equal(t, "AAAA", snapshot.AESKey)
		assert.Equal(t, clock.now, snapshot.UpdatedAt)
	})

	t.Run("EmptySessionIDIsIgnored", func(t *testing.T) {
		store.Update("", func(rc *workbench.ResultContext) { rc.AESKey = "ignored" })
		_, ok := store.Snapshot("")
		assert.False(t, ok)
	})

	t.Run("SweepRemovesIdleSessions", func(t *testing.T) {
		active := store.NewSession()
		clock.Advance(20 * time.Minute)
		store.Update(active, func(rc *workbench.ResultContext) { rc.AESIV = "00" })
		clock.Advance(20 * time.Minute)

		removed := store.sweep()
		assert.Positive(t, removed)

		_, ok := store.Snapshot(active)
		assert.True(t, ok)

		clock.Advance(31 * time.Minute)
		store.sweep()
		_, ok = store.Snapshot(active)
		assert.False(t, ok)
	})
}

func TestNewMemorySessionStore(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewMemorySessionStore(config.SessionSettings{}, logger)
	assert.Error(t, err)

	store, err := NewMemorySessionStore(config.SessionSettings{
		IdleTimeout:   time.Minute,
		SweepInterval: time.Second,
		CookieName:    "cwb_session",
	}, logger)
	require.NoError(t, err)

	store.Close()
	store.Close()

	select {
	case <-store.(*memorySessionStore).done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep loop did not stop")
	}
}
