package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceUniquenessPerUserRoom(t *testing.T) {
	table := NewPresenceTable()

	// Same user opens connection A then connection B in the same room:
	// the count stays at 1 because A's record is invalidated.
	table.Register("conn-a", "user-1", "123456")
	assert.Equal(t, 1, table.ActiveCount("123456"))

	table.Register("conn-b", "user-1", "123456")
	assert.Equal(t, 1, table.ActiveCount("123456"))

	// Closing the stale tab changes nothing; closing the live one drops
	// the count to zero.
	table.Invalidate("conn-a")
	assert.Equal(t, 1, table.ActiveCount("123456"))
	table.Invalidate("conn-b")
	assert.Equal(t, 0, table.ActiveCount("123456"))
}

func TestPresenceUniquenessUnderRepeatedJoins(t *testing.T) {
	table := NewPresenceTable()

	for i := 0; i < 50; i++ {
		table.Register(fmt.Sprintf("conn-%d", i), "user-1", "123456")
		assert.Equal(t, 1, table.ActiveCount("123456"))
	}
}

func TestAnonymousConnectionsEachCount(t *testing.T) {
	table := NewPresenceTable()

	// No user id means no deduplication: every tab counts.
	table.Register("conn-a", "", "123456")
	table.Register("conn-b", "", "123456")
	table.Register("conn-c", "", "123456")
	assert.Equal(t, 3, table.ActiveCount("123456"))
}

func TestCountScopedPerRoom(t *testing.T) {
	table := NewPresenceTable()

	table.Register("conn-a", "user-1", "111111")
	table.Register("conn-b", "user-1", "222222")

	// Same user in two different rooms holds one live record in each.
	assert.Equal(t, 1, table.ActiveCount("111111"))
	assert.Equal(t, 1, table.ActiveCount("222222"))
}

func TestInvalidateIdempotent(t *testing.T) {
	table := NewPresenceTable()
	table.Register("conn-a", "user-1", "123456")

	room, ok := table.Invalidate("conn-a")
	require.True(t, ok)
	assert.Equal(t, "123456", room)

	// Redundant leave is a no-op.
	_, ok = table.Invalidate("conn-a")
	assert.False(t, ok)
	_, ok = table.Invalidate("never-registered")
	assert.False(t, ok)
	assert.Equal(t, 0, table.ActiveCount("123456"))
}

func TestInvalidateUser(t *testing.T) {
	table := NewPresenceTable()
	table.Register("conn-a", "user-1", "123456")
	table.Register("conn-b", "", "123456")

	conns := table.InvalidateUser("user-1", "123456")
	assert.Equal(t, []string{"conn-a"}, conns)
	assert.Equal(t, 1, table.ActiveCount("123456"))

	assert.Empty(t, table.InvalidateUser("user-1", "123456"))
}

func TestActiveRoster(t *testing.T) {
	table := NewPresenceTable()
	table.Register("conn-a", "user-1", "123456")
	table.Register("conn-b", "user-2", "123456")
	table.Register("conn-c", "user-2", "999999")
	table.Invalidate("conn-b")

	roster := []string{"user-1", "user-2", "user-3"}
	assert.Equal(t, []string{"user-1"}, table.ActiveRoster("123456", roster))
}

func TestReset(t *testing.T) {
	table := NewPresenceTable()
	table.Register("conn-a", "user-1", "123456")
	table.Reset()
	assert.Equal(t, 0, table.ActiveCount("123456"))
	_, ok := table.Get("conn-a")
	assert.False(t, ok)
}
