// Package dispatch implements the notification channel used by session state
// to broadcast changes to interested subsystems. Delivery is synchronous and
// follows subscription order within a channel; no ordering is guaranteed
// across channels.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/polity-sim/coordinator/observability"
)

// EventHandlerPanic is emitted when a subscriber panics during delivery.
const EventHandlerPanic observability.EventType = "dispatch.handler.panic"

// Channel names a publish point delivering one payload type per notification.
type Channel string

// Handler consumes payloads published on a channel.
type Handler func(payload any)

// Dispatcher routes payloads to ordered per-channel subscriber lists.
// A panicking subscriber is isolated: the panic is reported to the observer
// and delivery continues with the remaining subscribers.
type Dispatcher struct {
	mu       sync.RWMutex
	channels map[Channel][]Handler
	observer observability.Observer
}

// NewDispatcher creates an empty Dispatcher. A nil observer silently drops
// panic reports.
func NewDispatcher(observer observability.Observer) *Dispatcher {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return &Dispatcher{
		channels: make(map[Channel][]Handler),
		observer: observer,
	}
}

// Subscribe registers a handler at the end of the channel's subscriber list.
// Nil handlers are ignored.
func (d *Dispatcher) Subscribe(channel Channel, handler Handler) {
	if handler == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels[channel] = append(d.channels[channel], handler)
}

// Notify synchronously invokes every subscriber of the channel, in
// subscription order, passing payload.
func (d *Dispatcher) Notify(channel Channel, payload any) {
	d.mu.RLock()
	handlers := d.channels[channel]
	d.mu.RUnlock()

	for _, handler := range handlers {
		d.deliver(channel, handler, payload)
	}
}

func (d *Dispatcher) deliver(channel Channel, handler Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			d.observer.OnEvent(context.Background(), observability.Event{
				Type:      EventHandlerPanic,
				Level:     observability.LevelError,
				Timestamp: time.Now(),
				Source:    "dispatch.Notify",
				Data: map[string]any{
					"channel": string(channel),
					"panic":   r,
				},
			})
		}
	}()

	handler(payload)
}

// Subscribers returns the number of handlers registered on the channel.
func (d *Dispatcher) Subscribers(channel Channel) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.channels[channel])
}

// Clear removes all subscriptions across all channels. Used for test
// isolation and clean session restarts, not by normal gameplay flow.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels = make(map[Channel][]Handler)
}
