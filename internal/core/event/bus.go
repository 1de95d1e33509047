package event

import (
	"reflect"
	"sync"
)

// Receiver handles events of type E.
type Receiver[E any] interface {
	Receive(E)
}

// ReceiverFunc adapts a plain function to Receiver.
type ReceiverFunc[E any] func(E)

func (f ReceiverFunc[E]) Receive(ev E) { f(ev) }

// Bus is a synchronous typed event bus. Emit calls every receiver of the
// event type, in subscription order, before it returns. Receivers must not
// destroy entities or otherwise mutate storage that the emitter may be
// iterating; they queue handles and act in their own next Run.
type Bus struct {
	mu        sync.Mutex // only protects receiver registration
	receivers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		receivers: make(map[reflect.Type][]any),
	}
}

// Subscribe registers a typed receiver for events of type E.
func Subscribe[E any](b *Bus, r Receiver[E]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeFor[E]()
	b.receivers[t] = append(b.receivers[t], r)
}

// SubscribeFunc registers fn for events of type E.
func SubscribeFunc[E any](b *Bus, fn func(E)) {
	Subscribe[E](b, ReceiverFunc[E](fn))
}

// Emit delivers ev to every receiver of E.
func Emit[E any](b *Bus, ev E) {
	for _, r := range b.receivers[reflect.TypeFor[E]()] {
		// Safe: Subscribe and Emit use the same type key.
		r.(Receiver[E]).Receive(ev)
	}
}

// Subscribers returns how many receivers are registered for E.
func Subscribers[E any](b *Bus) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.receivers[reflect.TypeFor[E]()])
}
