package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nijaru/yt-blog/blog"
	"github.com/nijaru/yt-blog/captions"
	"github.com/nijaru/yt-blog/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()

	assert.True(t, ValidID(s.ID))
	assert.False(t, ValidID("not-a-session"))
	assert.Nil(t, s.Draft)
}

func TestSucceedAndFail(t *testing.T) {
	s := New()
	transcript := &captions.Transcript{Text: "hello", Lines: 1}
	draft := &blog.Draft{Markdown: "# hi"}

	s.Succeed(transcript, draft, "Blog generated from transcript!")
	assert.Same(t, draft, s.Draft)
	assert.Same(t, transcript, s.Transcript)

	s.Fail(errors.NoCaptions("test"))
	assert.Nil(t, s.Draft)
	assert.Nil(t, s.Transcript)

	flash := s.TakeFlash()
	assert.Empty(t, flash.Notice)
	assert.Equal(t, "Failed to extract transcript: no English subtitles found", flash.Error)
	assert.Equal(t, errors.KindNoCaptions, flash.ErrorKind)
	assert.Empty(t, s.LastError)
	assert.Empty(t, s.TakeFlash().Error)
}

func TestFailWithPlainError(t *testing.T) {
	s := New()
	s.Fail(assert.AnError)

	assert.Equal(t, errors.KindInternal, s.ErrorKind)
	assert.Contains(t, s.LastError, "Unexpected error")
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	s := New()
	s.Notice = "saved"
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "saved", got.Notice)

	got.Notice = "changed"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "saved", again.Notice)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryStoreSaveRequiresID(t *testing.T) {
	err := NewMemoryStore(time.Hour).Save(context.Background(), &Session{})

	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	old, fresh := New(), New()
	require.NoError(t, store.Save(ctx, old))

	clock = clock.Add(50 * time.Second)
	require.NoError(t, store.Save(ctx, fresh))

	clock = clock.Add(30 * time.Second)
	_, err := store.Get(ctx, old.ID)
	assert.True(t, errors.IsNotFound(err))

	_, err = store.Get(ctx, fresh.ID)
	assert.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, store.Len())
}

func TestLocksAdmitOneHolder(t *testing.T) {
	var locks Locks
	var acquired int32
	var attempted, done sync.WaitGroup
	release := make(chan struct{})

	for i := 0; i < 10; i++ {
		attempted.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			unlock, ok := locks.TryLock("session")
			attempted.Done()
			if !ok {
				return
			}
			atomic.AddInt32(&acquired, 1)
			<-release
			unlock()
		}()
	}
	attempted.Wait()
	close(release)
	done.Wait()

	assert.EqualValues(t, 1, acquired)
	assert.Equal(t, 0, locks.Len())
}

func TestTryLock(t *testing.T) {
	var locks Locks

	unlock, ok := locks.TryLock("a")
	require.True(t, ok)

	_, ok = locks.TryLock("a")
	assert.False(t, ok)

	other, ok := locks.TryLock("b")
	require.True(t, ok)
	other()

	unlock()
	unlock()
	unlock, ok = locks.TryLock("a")
	assert.True(t, ok)
	unlock()
}

func TestLocksReleaseIDs(t *testing.T) {
	var locks Locks

	for i := 0; i < 100; i++ {
		unlock, ok := locks.TryLock(New().ID)
		require.True(t, ok)
		unlock()
	}

	assert.Equal(t, 0, locks.Len())
}
