package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPresence(t *testing.T) (*PresenceManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := NewPresenceManager(rdb, PresenceConfig{
		LastSeenTTL:        time.Second,
		OfflineGracePeriod: 50 * time.Millisecond,
		ReaperInterval:     time.Hour,
	})
	t.Cleanup(m.Stop)
	return m, mr
}

type presenceRecorder struct {
	mu      sync.Mutex
	online  []uint
	offline []uint
}

func (r *presenceRecorder) attach(m *PresenceManager) {
	m.SetCallbacks(
		func(userID uint) {
			r.mu.Lock()
			r.online = append(r.online, userID)
			r.mu.Unlock()
		},
		func(userID uint) {
			r.mu.Lock()
			r.offline = append(r.offline, userID)
			r.mu.Unlock()
		},
	)
}

func (r *presenceRecorder) offlineCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.offline)
}

func (r *presenceRecorder) onlineCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.online)
}

func TestPresenceRegisterMarksOnline(t *testing.T) {
	m, _ := testPresence(t)
	ctx := context.Background()

	assert.False(t, m.IsOnline(ctx, 1))
	m.Register(ctx, 1)
	assert.True(t, m.IsOnline(ctx, 1))
	assert.Contains(t, m.GetOnlineUserIDs(ctx), uint(1))
}

func TestPresenceGracePeriodSuppressesOfflineOnRapidReconnect(t *testing.T) {
	m, _ := testPresence(t)
	rec := &presenceRecorder{}
	rec.attach(m)
	ctx := context.Background()

	m.Register(ctx, 1)
	m.Unregister(ctx, 1)
	// Reconnect before the grace timer fires.
	m.Register(ctx, 1)

	assert.Never(t, func() bool {
		return rec.offlineCount() > 0
	}, 200*time.Millisecond, 10*time.Millisecond)
	assert.True(t, m.IsOnline(ctx, 1))
}

func TestPresenceOfflineFiresOnceAfterGrace(t *testing.T) {
	m, mr := testPresence(t)
	rec := &presenceRecorder{}
	rec.attach(m)
	ctx := context.Background()

	m.Register(ctx, 2)
	require.Eventually(t, func() bool {
		return rec.onlineCount() == 1
	}, time.Second, 10*time.Millisecond)

	// Let the last-seen TTL lapse so no other process appears to hold
	// the user online.
	mr.FastForward(2 * time.Second)
	m.Unregister(ctx, 2)

	assert.Eventually(t, func() bool {
		return rec.offlineCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.False(t, m.IsOnline(ctx, 2))

	// A second unregister must not fire the callback again.
	m.Unregister(ctx, 2)
	assert.Never(t, func() bool {
		return rec.offlineCount() > 1
	}, 200*time.Millisecond, 10*time.Millisecond)
}

func TestPresenceOnlineUserIDsFiltersExpired(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := NewPresenceManager(rdb, PresenceConfig{
		LastSeenTTL:        100 * time.Millisecond,
		OfflineGracePeriod: 10 * time.Millisecond,
		ReaperInterval:     time.Hour,
	})
	t.Cleanup(m.Stop)
	ctx := context.Background()

	m.Register(ctx, 3)
	require.Contains(t, m.GetOnlineUserIDs(ctx), uint(3))

	// Simulate a crashed peer: membership persists but the TTL key lapses.
	m.mu.Lock()
	delete(m.localConnCounts, 3)
	m.mu.Unlock()
	mr.FastForward(time.Second)

	assert.NotContains(t, m.GetOnlineUserIDs(ctx), uint(3))
}
