package changefeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed early")
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_FansOutToEverySubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBroker()

	first, err := b.Subscribe(ctx)
	require.NoError(t, err)
	second, err := b.Subscribe(ctx)
	require.NoError(t, err)

	e := NewEvent(OpInsert, "p1", "test", time.Now())
	require.NoError(t, b.Publish(ctx, e))

	assert.Equal(t, e, receive(t, first))
	assert.Equal(t, e, receive(t, second))
}

func TestBroker_NeverBlocksOnSlowSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBroker()

	ch, err := b.Subscribe(ctx)
	require.NoError(t, err)

	for i := 0; i < subscriberBuffer*3; i++ {
		require.NoError(t, b.Publish(ctx, NewEvent(OpUpdate, "p1", "test", time.Now())))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestBroker_ClosesChannelOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroker()

	ch, err := b.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel was not closed")
	}
	assert.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMulti_PublishesEverywhereAndJoinsErrors(t *testing.T) {
	ok := NewMockPublisher()
	failing := NewMockPublisher()
	failing.PublishFunc = func(context.Context, Event) error { return errors.New("down") }

	e := NewEvent(OpDelete, "p1", "test", time.Now())
	err := Multi{failing, ok}.Publish(context.Background(), e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Equal(t, []Event{e}, ok.Events())
	assert.Equal(t, []Event{e}, failing.Events())
}

func TestForward_SkipsOwnEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	remote := NewBroker()
	local := NewMockPublisher()

	done := make(chan error, 1)
	go func() { done <- Forward(ctx, remote, local, "me") }()
	require.Eventually(t, func() bool { return remote.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	own := NewEvent(OpInsert, "p1", "me", time.Now())
	other := NewEvent(OpInsert, "p2", "them", time.Now())
	require.NoError(t, remote.Publish(ctx, own))
	require.NoError(t, remote.Publish(ctx, other))

	require.Eventually(t, func() bool { return len(local.Events()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, other, local.Events()[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("forward did not stop")
	}
}

func TestNotifyPayload_RoundTrip(t *testing.T) {
	e := NewEvent(OpUpdate, "p1", "node-a", time.UnixMilli(1767225600000).UTC())

	payload, err := encodeNotify(e)
	require.NoError(t, err)
	got, err := decodeNotify(payload)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Op, got.Op)
	assert.True(t, e.At.Equal(got.At))

	_, err = decodeNotify("not base64!")
	assert.Error(t, err)
}
