// Package event broadcasts pipeline events to websocket subscribers
package event

import (
	"context"
	"net/http"
	"sync"
	"time"

	// Packages
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/sirupsen/logrus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Hub struct {
	sync.RWMutex
	conns   map[*websocket.Conn]struct{}
	timeout time.Duration
	log     *logrus.Entry
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultWriteTimeout = 5 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewHub returns an empty hub. A nil logger uses the standard logger.
func NewHub(log *logrus.Entry) *Hub {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Hub{
		conns:   make(map[*websocket.Conn]struct{}),
		timeout: DefaultWriteTimeout,
		log:     log.WithField("component", "events"),
	}
}

// Close disconnects all subscribers
func (h *Hub) Close() error {
	h.Lock()
	conns := h.conns
	h.conns = make(map[*websocket.Conn]struct{})
	h.Unlock()

	for conn := range conns {
		conn.CloseNow()
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ServeHTTP upgrades the request to a websocket and holds it open until the
// subscriber disconnects. Messages from the subscriber are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.WithError(err).Warn("websocket accept")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	h.add(conn)
	defer h.remove(conn)
	h.log.WithField("remote", r.RemoteAddr).Debug("subscriber connected")

	// Wait for the subscriber to go away
	<-conn.CloseRead(r.Context()).Done()
	h.log.WithField("remote", r.RemoteAddr).Debug("subscriber disconnected")
}

// Publish sends the event to every subscriber, and returns when each write
// has completed or timed out. Subscribers which fail are dropped.
func (h *Hub) Publish(evt schema.Event) {
	h.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.RUnlock()

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(conn *websocket.Conn) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
			defer cancel()
			if err := wsjson.Write(ctx, conn, evt); err != nil {
				h.log.WithError(err).WithField("type", evt.Type).Debug("dropping subscriber")
				h.remove(conn)
				conn.Close(websocket.StatusPolicyViolation, "write failed")
			}
		}(conn)
	}
	wg.Wait()
}

// Len returns the number of subscribers
func (h *Hub) Len() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.conns)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (h *Hub) add(conn *websocket.Conn) {
	h.Lock()
	defer h.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.Lock()
	defer h.Unlock()
	delete(h.conns, conn)
}
