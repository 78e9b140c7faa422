package realtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeConn records writes; failWrites makes every WriteJSON fail.
type fakeConn struct {
	events     []Event
	failWrites bool
	closed     bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.failWrites {
		return errors.New("write failed")
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestRegisterAndPresence(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.IsOnline("u1"))
	assert.Equal(t, 0, r.Count())

	c := NewClient("u1", &fakeConn{})
	displaced := r.Register(c)

	assert.Nil(t, displaced)
	assert.True(t, r.IsOnline("u1"))
	assert.Equal(t, 1, r.Count())

	got, ok := r.Get("u1")
	assert.True(t, ok)
	assert.Equal(t, c.ID, got.ID)
}

func TestRegisterDisplacesPreviousConnection(t *testing.T) {
	r := NewRegistry()

	first := NewClient("u1", &fakeConn{})
	second := NewClient("u1", &fakeConn{})

	assert.Nil(t, r.Register(first))
	displaced := r.Register(second)

	assert.Equal(t, first.ID, displaced.ID)
	assert.Equal(t, 1, r.Count())

	got, _ := r.Get("u1")
	assert.Equal(t, second.ID, got.ID)
}

func TestRemoveIsHandleScoped(t *testing.T) {
	r := NewRegistry()

	stale := NewClient("u1", &fakeConn{})
	fresh := NewClient("u1", &fakeConn{})

	r.Register(stale)
	r.Register(fresh)

	// The stale handle's deferred cleanup must not evict the fresh one.
	assert.False(t, r.Remove(stale))
	assert.True(t, r.IsOnline("u1"))

	assert.True(t, r.Remove(fresh))
	assert.False(t, r.IsOnline("u1"))
}

func TestPushToUser(t *testing.T) {
	r := NewRegistry()
	g := NewGateway(r, zap.NewNop())

	conn := &fakeConn{}
	r.Register(NewClient("u1", conn))

	ok := g.PushToUser("u1", EventNewNotification, map[string]string{"title": "hi"})

	assert.True(t, ok)
	assert.Len(t, conn.events, 1)
	assert.Equal(t, EventNewNotification, conn.events[0].Event)
}

func TestPushToOfflineUser(t *testing.T) {
	g := NewGateway(NewRegistry(), zap.NewNop())
	assert.False(t, g.PushToUser("ghost", EventNewNotification, nil))
}

func TestPushFailureDropsConnection(t *testing.T) {
	r := NewRegistry()
	g := NewGateway(r, zap.NewNop())

	conn := &fakeConn{failWrites: true}
	r.Register(NewClient("u1", conn))

	ok := g.PushToUser("u1", EventNewNotification, nil)

	assert.False(t, ok)
	assert.False(t, r.IsOnline("u1"))
	assert.True(t, conn.closed)
}

func TestDropBroadcastsUserOffline(t *testing.T) {
	r := NewRegistry()
	g := NewGateway(r, zap.NewNop())

	broken := &fakeConn{failWrites: true}
	r.Register(NewClient("u1", broken))

	survivor := &fakeConn{}
	r.Register(NewClient("u2", survivor))

	ok := g.PushToUser("u1", EventNewNotification, nil)

	assert.False(t, ok)
	assert.False(t, r.IsOnline("u1"))
	assert.True(t, r.IsOnline("u2"))

	// The remaining connection learns who went offline.
	if assert.Len(t, survivor.events, 1) {
		assert.Equal(t, EventUserOffline, survivor.events[0].Event)
		assert.Equal(t, map[string]string{"userId": "u1"}, survivor.events[0].Data)
	}
}

func TestPresenceBroadcastSkipsOrigin(t *testing.T) {
	r := NewRegistry()
	g := NewGateway(r, zap.NewNop())

	joinerConn := &fakeConn{}
	joiner := NewClient("u1", joinerConn)
	r.Register(joiner)

	otherConn := &fakeConn{}
	r.Register(NewClient("u2", otherConn))

	g.broadcastExcept(joiner.ID, Event{
		Event: EventUserOnline,
		Data:  map[string]string{"userId": "u1"},
	})

	assert.Empty(t, joinerConn.events)
	if assert.Len(t, otherConn.events, 1) {
		assert.Equal(t, EventUserOnline, otherConn.events[0].Event)
		assert.Equal(t, map[string]string{"userId": "u1"}, otherConn.events[0].Data)
	}
}

func TestBroadcastReachesEveryone(t *testing.T) {
	r := NewRegistry()
	g := NewGateway(r, zap.NewNop())

	conns := []*fakeConn{{}, {}, {}}
	for i, c := range conns {
		r.Register(NewClient(string(rune('a'+i)), c))
	}

	g.Broadcast(EventUserOnline, map[string]string{"userId": "x"})

	for _, c := range conns {
		assert.Len(t, c.events, 1)
	}
}
