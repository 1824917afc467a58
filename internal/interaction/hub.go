package interaction

import (
	"sync"
	"time"
)

const (
	collectorBuffer = 16
	defaultGrace    = time.Second
)

// Hub routes component and modal events to the collector registered for the
// message they were triggered on.
type Hub struct {
	// Grace is how long Deliver waits for a collector that is not registered
	// yet. Views learn their message id one REST round trip after the
	// message is shown, and a fast click can land in between.
	Grace time.Duration

	mu         sync.Mutex
	collectors map[string]*Collector
	// registered is closed and replaced on every Collect.
	registered chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Grace:      defaultGrace,
		collectors: make(map[string]*Collector),
		registered: make(chan struct{}),
	}
}

// Collect registers a collector for messageID, replacing any previous one.
// The caller must Stop it.
func (h *Hub) Collect(messageID string) *Collector {
	c := &Collector{
		hub:       h,
		messageID: messageID,
		events:    make(chan Interaction, collectorBuffer),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	prev := h.collectors[messageID]
	h.collectors[messageID] = c
	close(h.registered)
	h.registered = make(chan struct{})
	h.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
	return c
}

// Deliver hands in to the collector of its message, waiting up to Grace for
// one to be registered. It reports false when no live collector wants it.
func (h *Hub) Deliver(in Interaction) bool {
	msg := in.Data().Message
	if msg == nil {
		return false
	}

	c, registered := h.lookup(msg.ID)
	if c == nil && h.Grace > 0 {
		timer := time.NewTimer(h.Grace)
		defer timer.Stop()
		for c == nil {
			select {
			case <-registered:
				c, registered = h.lookup(msg.ID)
			case <-timer.C:
				return false
			}
		}
	}
	if c == nil {
		return false
	}

	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.events <- in:
		return true
	case <-c.done:
		return false
	}
}

func (h *Hub) lookup(messageID string) (*Collector, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.collectors[messageID], h.registered
}

// Has reports whether a collector is registered for messageID.
func (h *Hub) Has(messageID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.collectors[messageID]
	return ok
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.collectors)
}

// Collector receives the events of one message until stopped.
type Collector struct {
	hub       *Hub
	messageID string
	events    chan Interaction
	done      chan struct{}
	once      sync.Once
}

func (c *Collector) Events() <-chan Interaction { return c.events }

func (c *Collector) MessageID() string { return c.messageID }

// Stop unregisters the collector. Safe to call more than once.
func (c *Collector) Stop() {
	c.once.Do(func() {
		c.hub.mu.Lock()
		if c.hub.collectors[c.messageID] == c {
			delete(c.hub.collectors, c.messageID)
		}
		c.hub.mu.Unlock()
		close(c.done)
	})
}
