package conversation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnLocksReleaseDropsEntry(t *testing.T) {
	locks := newTurnLocks()
	id := uuid.New()

	release, err := locks.acquire(id)
	require.NoError(t, err)
	assert.Equal(t, 1, locks.size())

	release()
	assert.Equal(t, 0, locks.size())
}

func TestTurnLocksContendedEntrySurvivesUntilHolderReleases(t *testing.T) {
	locks := newTurnLocks()
	id := uuid.New()

	release, err := locks.acquire(id)
	require.NoError(t, err)

	_, err = locks.acquire(id)
	require.ErrorIs(t, err, ErrTurnInProgress)
	assert.Equal(t, 1, locks.size(), "the holder still references the entry")

	release()
	assert.Equal(t, 0, locks.size())

	// A fresh turn after release gets a fresh entry.
	release, err = locks.acquire(id)
	require.NoError(t, err)
	assert.Equal(t, 1, locks.size())
	release()
	assert.Equal(t, 0, locks.size())
}

func TestTurnLocksIndependentConversations(t *testing.T) {
	locks := newTurnLocks()

	releaseA, err := locks.acquire(uuid.New())
	require.NoError(t, err)
	releaseB, err := locks.acquire(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, locks.size())

	releaseA()
	releaseB()
	assert.Equal(t, 0, locks.size())
}
