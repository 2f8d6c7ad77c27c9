package fswatch

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// RebuildNotification is the JSON payload pushed to every connected client
// after a rebuild. It carries metadata only, never chunk contents or
// sourcemaps: this server's job is to tell a dev client a rebuild happened
// and what the result looked like, not to inject code (SPEC_FULL.md §6).
type RebuildNotification struct {
	Flags       []string `json:"flags"`
	SourceCount int      `json:"sourceCount"`
	Errors      []string `json:"errors,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Notifier accepts websocket connections and broadcasts RebuildNotification
// values to all of them. Grounded on the teacher's serveDev/devApiHandler
// (pkg/api/serve_dev.go), stripped down to push-only (no client->server
// "ping"/reload-request protocol, since nothing here needs one yet).
type Notifier struct {
	mu    sync.Mutex
	conns []*websocket.Conn
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	n.mu.Lock()
	n.conns = append(n.conns, conn)
	n.mu.Unlock()

	go n.drain(conn)
}

// drain discards client reads and drops the connection from the broadcast
// set once a read fails (the client closed it); Broadcast also drops any
// connection whose write fails.
func (n *Notifier) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			n.remove(conn)
			conn.Close()
			return
		}
	}
}

func (n *Notifier) remove(target *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.conns[:0]
	for _, c := range n.conns {
		if c != target {
			out = append(out, c)
		}
	}
	n.conns = out
}

// Broadcast pushes msg to every currently connected client, dropping any
// connection that fails to accept the write.
func (n *Notifier) Broadcast(msg RebuildNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var live []*websocket.Conn
	for _, c := range n.conns {
		c.SetWriteDeadline(time.Now().Add(30 * time.Second))
		if err := c.WriteJSON(msg); err == nil {
			live = append(live, c)
		} else {
			c.Close()
		}
	}
	n.conns = live
}
