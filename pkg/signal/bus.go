// Package signal is a small synchronous pub/sub dispatcher.
//
// Handlers subscribe to a named signal and receive every payload emitted
// under that name, in subscription order, on the emitting goroutine.
package signal

import "sync"

// Handler receives one emitted signal.
type Handler func(name string, payload any)

// Token identifies a subscription for Off.
type Token uint64

type subscription struct {
	token   Token
	handler Handler
}

// Bus dispatches named signals. The zero value is ready to use and a nil
// *Bus drops every emission.
type Bus struct {
	mu     sync.Mutex
	next   Token
	subs   map[string][]subscription
	any    []subscription
	counts map[string]int
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// On subscribes h to name. An empty name subscribes to every signal.
func (b *Bus) On(name string, h Handler) Token {
	if b == nil || h == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	sub := subscription{token: b.next, handler: h}
	if name == "" {
		b.any = append(b.any, sub)
		return sub.token
	}
	if b.subs == nil {
		b.subs = make(map[string][]subscription)
	}
	b.subs[name] = append(b.subs[name], sub)
	return sub.token
}

// Once subscribes h to the next emission of name only.
func (b *Bus) Once(name string, h Handler) Token {
	if b == nil || h == nil {
		return 0
	}
	var token Token
	fired := false
	token = b.On(name, func(n string, payload any) {
		if fired {
			return
		}
		fired = true
		b.Off(token)
		h(n, payload)
	})
	return token
}

// Off removes a subscription. Unknown tokens are ignored.
func (b *Bus) Off(token Token) {
	if b == nil || token == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.any = without(b.any, token)
	for name, list := range b.subs {
		if rest := without(list, token); len(rest) != len(list) {
			if len(rest) == 0 {
				delete(b.subs, name)
			} else {
				b.subs[name] = rest
			}
			return
		}
	}
}

// Emit calls every handler subscribed to name, then every catch-all
// handler. Handlers may subscribe, unsubscribe or emit while being called;
// changes apply from the next emission.
func (b *Bus) Emit(name string, payload any) {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.counts == nil {
		b.counts = make(map[string]int)
	}
	b.counts[name]++
	handlers := make([]Handler, 0, len(b.subs[name])+len(b.any))
	for _, s := range b.subs[name] {
		handlers = append(handlers, s.handler)
	}
	for _, s := range b.any {
		handlers = append(handlers, s.handler)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(name, payload)
	}
}

// Count returns how many times name has been emitted.
func (b *Bus) Count(name string) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[name]
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
	b.any = nil
}

func without(list []subscription, token Token) []subscription {
	for i, s := range list {
		if s.token == token {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
