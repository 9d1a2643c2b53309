package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/bookhub/internal/view"
)

type GridEventKind string

const (
	GridReset GridEventKind = "reset"
	GridCard  GridEventKind = "card"
	GridDone  GridEventKind = "done"
)

// GridEvent reports grid changes to live front ends. A reset starts a new
// generation; cards of that generation follow in index order; done closes it.
type GridEvent struct {
	Kind       GridEventKind `json:"kind"`
	Generation uint64        `json:"generation"`
	Total      int           `json:"total"`
	CountLabel string        `json:"count_label,omitempty"`
	Status     string        `json:"status,omitempty"`
	Card       *view.Card    `json:"card,omitempty"`
}

// Subscribe returns a channel of grid events and a func that ends the
// subscription. Slow subscribers lose events rather than block the controller.
func (c *Controller) Subscribe(buffer int) (<-chan GridEvent, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan GridEvent, buffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

func (c *Controller) emitLocked(ev GridEvent) {
	for id, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			logrus.WithFields(logrus.Fields{
				"client_id":  c.clientID,
				"subscriber": id,
				"kind":       ev.Kind,
			}).Warn("grid subscriber is full, dropping event")
		}
	}
}
