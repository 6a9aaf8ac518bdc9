package service

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSConn serializes writes to a single websocket connection.
// gorilla/websocket allows at most one concurrent writer, and several
// delivery workers can pick up messages for the same recipient at once.
type WSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

func (c *WSConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *WSConn) Close() error {
	return c.conn.Close()
}
