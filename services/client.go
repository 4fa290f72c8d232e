package services

import (
	"sync"

	"github.com/CHgh0sts/LotoSocket/utils/logger"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection. roomCode and userID are set by the
// join flow and read only from that connection's read loop.
type Client struct {
	connID   string
	userID   string
	roomCode string
	conn     *websocket.Conn
	send     chan []byte
	once     sync.Once
}

func newClient(connID string, conn *websocket.Conn) *Client {
	return &Client{
		connID: connID,
		conn:   conn,
		send:   make(chan []byte, 32),
	}
}

// Close shuts the send channel and the underlying connection exactly once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// enqueue drops the message if the client's buffer is full rather than
// blocking the broadcaster.
func (c *Client) enqueue(msg []byte) {
	if msg == nil {
		return
	}
	defer func() {
		// Send on a closed channel if the client raced Close; drop it.
		if r := recover(); r != nil {
			logger.Debugf("[Client %s] dropped message after close", c.connID)
		}
	}()
	select {
	case c.send <- msg:
	default:
		logger.Warnf("[Client %s] send buffer full, dropping message", c.connID)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Errorf("[Client %s] write error: %v", c.connID, err)
			return
		}
	}
}
