package reportcards

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunStorePutGet(t *testing.T) {
	store, err := NewRunStore(time.Hour, "@every 10m", zap.NewNop())
	require.NoError(t, err)

	run := &Run{ID: uuid.New(), CreatedAt: time.Now()}
	store.Put(run)

	got, ok := store.Get(run.ID)
	require.True(t, ok)
	assert.Equal(t, run, got)

	_, ok = store.Get(uuid.New())
	assert.False(t, ok)
}

func TestRunStorePurgeExpired(t *testing.T) {
	store, err := NewRunStore(time.Hour, "@every 10m", zap.NewNop())
	require.NoError(t, err)

	fresh := &Run{ID: uuid.New(), CreatedAt: time.Now()}
	stale := &Run{ID: uuid.New(), CreatedAt: time.Now().Add(-2 * time.Hour)}
	store.Put(fresh)
	store.Put(stale)

	store.purge()

	_, ok := store.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = store.Get(stale.ID)
	assert.False(t, ok)
}

func TestRunStoreInvalidSchedule(t *testing.T) {
	_, err := NewRunStore(time.Hour, "not a schedule", zap.NewNop())
	assert.Error(t, err)
}
