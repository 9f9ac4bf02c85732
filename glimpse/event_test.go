package glimpse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DispatchInSubscriptionOrder(t *testing.T) {
	var d Dispatcher
	var calls []string

	d.Subscribe(func(event Event) { calls = append(calls, "first") })
	d.Subscribe(func(event Event) { calls = append(calls, "second") })

	d.Dispatch(CloseEvent{})

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_Cancel(t *testing.T) {
	var d Dispatcher
	var received []Event

	cancel := d.Subscribe(func(event Event) { received = append(received, event) })
	d.Dispatch(FocusEvent{Focused: true})

	cancel()
	d.Dispatch(FocusEvent{Focused: false})

	assert.Equal(t, []Event{FocusEvent{Focused: true}}, received)
	assert.Equal(t, 0, d.Len())

	// cancelling twice is a no-op
	cancel()
	assert.Equal(t, 0, d.Len())
}

func TestDispatcher_CancelOnlyRemovesOwnSubscriber(t *testing.T) {
	var d Dispatcher
	var count int

	cancelFirst := d.Subscribe(func(event Event) {})
	d.Subscribe(func(event Event) { count++ })

	cancelFirst()
	d.Dispatch(CloseEvent{})

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1, count)
}

func TestDispatcher_CancelDuringDispatch(t *testing.T) {
	var d Dispatcher
	var count int

	var cancel func()
	cancel = d.Subscribe(func(event Event) {
		count++
		cancel()
	})

	d.Subscribe(func(event Event) { count++ })

	d.Dispatch(CloseEvent{})
	d.Dispatch(CloseEvent{})

	assert.Equal(t, 3, count)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	var d Dispatcher

	assert.NotPanics(t, func() {
		d.Dispatch(ResizeEvent{Width: 10, Height: 10})
	})
}
